package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
)

// renderTable draws a rounded table with a header row. Short rows are padded.
func renderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, 0, len(headers))
	for _, h := range headers {
		header = append(header, h)
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(headers))
		for i := range r {
			r[i] = ""
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}
	return tw.Render()
}
