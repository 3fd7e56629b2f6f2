package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// renderTable draws rows under headers. Missing cells render empty.
func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := range columns {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)
	for _, row := range rows {
		tw.AppendRow(padRow(row, columns))
	}
	tw.SetColumnConfigs(columnConfigs(columns, aligns))
	return tw.Render()
}

// renderCounts draws a headerless label/value table for run totals.
func renderCounts(title string, rows [][2]string) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Options.SeparateRows = false
	if title != "" {
		tw.SetTitle(title)
	}
	for _, row := range rows {
		tw.AppendRow(table.Row{row[0], row[1]})
	}
	tw.SetColumnConfigs(columnConfigs(2, []columnAlignment{alignLeft, alignRight}))
	return tw.Render()
}

func padRow(row []string, columns int) table.Row {
	r := make(table.Row, columns)
	for i := range columns {
		if i < len(row) {
			r[i] = row[i]
		} else {
			r[i] = ""
		}
	}
	return r
}

func columnConfigs(columns int, aligns []columnAlignment) []table.ColumnConfig {
	configs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	return configs
}
