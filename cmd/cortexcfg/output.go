package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

const (
	ansiGreen = "\033[32m"
	ansiRed   = "\033[31m"
	ansiReset = "\033[0m"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeTOML encodes v as TOML to the command's stdout.
func writeTOML(cmd *cobra.Command, v any) error {
	enc := toml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndentTables(true)
	return enc.Encode(v)
}

func statusLine(w io.Writer, ok bool, message string) string {
	mark, color := "✔", ansiGreen
	if !ok {
		mark, color = "✘", ansiRed
	}
	line := mark + "  " + message
	if shouldColorize(w) {
		return color + line + ansiReset
	}
	return line
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
