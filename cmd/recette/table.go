package main

import (
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"recette/internal/deps"
	"recette/internal/store"
)

func newTable() table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	return tw
}

// renderFields prints label/value pairs, used for a single extracted recipe
// and for the resolved configuration. label names the left column.
func renderFields(label string, rows [][2]string) string {
	tw := newTable()
	tw.AppendHeader(table.Row{label, "Value"})
	for _, row := range rows {
		tw.AppendRow(table.Row{row[0], row[1]})
	}
	return tw.Render()
}

// renderRecipeList prints stored-recipe summaries with ids right-aligned.
func renderRecipeList(summaries []store.Summary) string {
	tw := newTable()
	tw.AppendHeader(table.Row{"ID", "Title", "URL"})
	for _, summary := range summaries {
		tw.AppendRow(table.Row{strconv.FormatInt(summary.ID, 10), summary.Title, summary.VideoURL})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

// renderDepsReport prints the external-tool preflight statuses. out decides
// whether the status marks carry color.
func renderDepsReport(out io.Writer, statuses []deps.Status) string {
	tw := newTable()
	tw.AppendHeader(table.Row{"Tool", "Command", "Status", "Detail"})
	for _, status := range statuses {
		detail := status.Detail
		if detail == "" {
			detail = status.Description
		}
		tw.AppendRow(table.Row{status.Name, status.Command, statusMark(out, status.Available), detail})
	}
	return tw.Render()
}
