package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"reelgate/internal/store"
)

// renderCatalogTable lays out catalog entries for the terminal. The numeric
// columns are right-aligned so codes and years line up.
func renderCatalogTable(entries []store.CatalogEntry) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Code", "Title", "Director", "Year"})
	for _, entry := range entries {
		tw.AppendRow(table.Row{entry.Code, entry.Title, entry.Director, entry.Year})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
