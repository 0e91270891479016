package logging

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

const redacted = "[redacted]"

// redactAttr masks values whose key mentions a secret, token or password.
func redactAttr(attr slog.Attr) slog.Attr {
	key := strings.ToLower(attr.Key)
	for _, marker := range []string{"secret", "token", "password", "license"} {
		if strings.Contains(key, marker) && attr.Value.Kind() == slog.KindString {
			if attr.Value.String() != "" {
				attr.Value = slog.StringValue(redacted)
			}
			return attr
		}
	}
	return attr
}

func formatValue(v slog.Value) string {
	v = v.Resolve()
	var s string
	switch v.Kind() {
	case slog.KindBool:
		return strconv.FormatBool(v.Bool())
	case slog.KindInt64:
		return strconv.FormatInt(v.Int64(), 10)
	case slog.KindUint64:
		return strconv.FormatUint(v.Uint64(), 10)
	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'f', -1, 64)
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().UTC().Format(time.RFC3339)
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			s = err.Error()
		} else {
			s = fmt.Sprint(v.Any())
		}
	default:
		s = v.String()
	}
	if needsQuotes(s) {
		return strconv.Quote(s)
	}
	return s
}

func needsQuotes(s string) bool {
	if s == "" {
		return true
	}
	for _, r := range s {
		if r <= ' ' || r == '=' || r == '"' {
			return true
		}
	}
	return false
}
