package config

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Field is one line of the redacted settings report.
type Field struct {
	Name  string `json:"name" toml:"name"`
	Value string `json:"value" toml:"value"`
}

// Redacted returns the settings in display order with the client secret
// replaced by a mask of matching length.
func (s Settings) Redacted() []Field {
	return []Field{
		{Name: "CLIENT_ID", Value: orPlaceholder(s.ClientID, "(not set)")},
		{Name: "CLIENT_SECRET", Value: maskSecret(s.ClientSecret)},
		{Name: "HEADSET_ID", Value: orPlaceholder(s.HeadsetID, "(auto-detect)")},
		{Name: "LICENSE", Value: orPlaceholder(s.License, "(none)")},
		{Name: "DEBIT", Value: strconv.Itoa(s.Debit)},
		{Name: "DEBUG", Value: strconv.FormatBool(s.Debug)},
		{Name: "EXPORT_FOLDER", Value: s.ExportFolder},
	}
}

func maskSecret(secret string) string {
	if secret == "" {
		return "(not set)"
	}
	return strings.Repeat("*", utf8.RuneCountInString(secret))
}

func orPlaceholder(value, placeholder string) string {
	if value == "" {
		return placeholder
	}
	return value
}
