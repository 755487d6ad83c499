package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"waitforfile/internal/preflight"
)

// renderChecks lays out preflight results as a three column table.
func renderChecks(results []preflight.Result, colorize bool) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Check", "Status", "Detail"})

	for _, result := range results {
		tw.AppendRow(table.Row{result.Name, checkStatus(result, colorize), result.Detail})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignCenter, AlignHeader: text.AlignCenter},
		{Number: 3, Align: text.AlignLeft},
	})
	return tw.Render()
}

func checkStatus(result preflight.Result, colorize bool) string {
	label, color := "FAIL", text.Colors{text.FgRed}
	if result.Passed {
		label, color = "OK", text.Colors{text.FgGreen}
	}
	if !colorize {
		return label
	}
	return color.Sprint(label)
}
