package main

import (
	"strings"
	"testing"

	"reelgate/internal/store"
)

func TestRenderCatalogTable(t *testing.T) {
	entries := []store.CatalogEntry{
		{Code: 7, Title: "Stalker", Director: "Andrei Tarkovsky", Year: 1979},
		{Code: 1204, Title: "Playtime", Director: "Jacques Tati", Year: 1967},
	}

	rendered := renderCatalogTable(entries)

	for _, want := range []string{"Code", "Title", "Director", "Year", "Stalker", "Andrei Tarkovsky", "1204", "1967"} {
		if !strings.Contains(rendered, want) {
			t.Fatalf("rendered table missing %q:\n%s", want, rendered)
		}
	}

	lines := strings.Split(rendered, "\n")
	// header + two rows + three border lines
	if len(lines) != 6 {
		t.Fatalf("expected 6 rendered lines, got %d:\n%s", len(lines), rendered)
	}
}

func TestRenderCatalogTableEmpty(t *testing.T) {
	rendered := renderCatalogTable(nil)
	if !strings.Contains(rendered, "Code") {
		t.Fatalf("empty table should still render a header:\n%s", rendered)
	}
}
