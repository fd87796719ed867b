package formats

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestParseHierarchyFile(t *testing.T) {
	table, err := ParseHierarchyFile(filepath.Join("testdata", "hierarchy.yaml"))
	if err != nil {
		t.Fatalf("ParseHierarchyFile failed: %v", err)
	}

	if len(table) != 2 {
		t.Fatalf("expected 2 entities, got %d", len(table))
	}

	player := table["minecraft:player"]
	if player["jacket"] != "body" {
		t.Errorf("expected jacket -> body, got %q", player["jacket"])
	}
	if parent, ok := player["body"]; !ok || parent != "" {
		t.Errorf("expected null parent for body, got %q (present %v)", parent, ok)
	}

	pig := table["minecraft:pig"]
	if pig["saddle"] != "body" {
		t.Errorf("expected saddle -> body, got %q", pig["saddle"])
	}
	if parent, ok := pig["body"]; !ok || parent != "" {
		t.Errorf("expected empty parent for body, got %q (present %v)", parent, ok)
	}
}

func TestParseHierarchyTable_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not a map", "- a\n- b\n"},
		{"nested too deep", "pig:\n  head:\n    parent: body\n"},
		{"empty entity", "\"\":\n  head: body\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseHierarchyTable([]byte(tt.data))
			if !errors.Is(err, ErrInvalidHierarchy) {
				t.Errorf("expected ErrInvalidHierarchy, got %v", err)
			}
		})
	}
}

func TestParseHierarchyTable_Empty(t *testing.T) {
	table, err := ParseHierarchyTable(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table) != 0 {
		t.Errorf("expected empty table, got %v", table)
	}
}
