package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/grovekit/grove/internal/config"
)

func TestWriteTreeTable(t *testing.T) {
	var buf bytes.Buffer
	rows := []TreeRow{
		{Name: "app", Path: "/repos/app", Garden: "dev", Branch: "main", State: "cloned"},
		{Name: "lib", Path: "/repos/lib", State: "missing"},
	}
	if err := WriteTreeTable(&buf, rows); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "TREE") || !strings.Contains(lines[0], "STATE") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "app") || !strings.Contains(lines[1], "dev") {
		t.Errorf("row = %q", lines[1])
	}
	if !strings.Contains(lines[2], "missing") {
		t.Errorf("row = %q", lines[2])
	}
}

func TestWriteTreeTable_empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTreeTable(&buf, nil); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Errorf("expected the header only, got %d lines", len(lines))
	}
}

func TestWriteGroupTable(t *testing.T) {
	group := config.NewGroup("apps")
	group.Members = []string{"app", "app-ios"}

	var buf bytes.Buffer
	if err := WriteGroupTable(&buf, []*config.Group{group}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "GROUP") || !strings.Contains(out, "apps") || !strings.Contains(out, "2") {
		t.Errorf("output = %q", out)
	}
}

func TestWriteGardenTable(t *testing.T) {
	garden := config.NewGarden("dev")
	garden.Groups = []string{"apps"}
	garden.Trees = []string{"docs", "infra"}

	var buf bytes.Buffer
	if err := WriteGardenTable(&buf, []*config.Garden{garden}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "GARDEN") || !strings.Contains(out, "dev") {
		t.Errorf("output = %q", out)
	}
	line := strings.Split(strings.TrimSpace(out), "\n")[1]
	if !strings.Contains(line, "1") || !strings.Contains(line, "2") {
		t.Errorf("counts line = %q", line)
	}
}
