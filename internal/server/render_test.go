package server

import (
	"bytes"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/elpatron68/todo-web/internal/tasks"
)

func TestRenderTaskListEmpty(t *testing.T) {
	s := NewServer(tasks.NewStore(filepath.Join(t.TempDir(), "tasks.json")))
	frag, err := s.renderTaskList(nil)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(frag), "No tasks yet!") || !strings.Contains(string(frag), "empty-state") {
		t.Fatalf("expected empty state, got %s", frag)
	}
}

func TestRenderTaskListRows(t *testing.T) {
	s := NewServer(tasks.NewStore(filepath.Join(t.TempDir(), "tasks.json")))
	frag, err := s.renderTaskList([]tasks.Task{{Text: "one", Done: true}, {Text: "two"}})
	if err != nil {
		t.Fatal(err)
	}
	out := string(frag)
	if strings.Count(out, `class="task-item`) != 2 {
		t.Fatalf("expected 2 rows:\n%s", out)
	}
	if strings.Count(out, ">Done<") != 1 || strings.Count(out, ">Delete<") != 2 {
		t.Fatalf("unexpected action links:\n%s", out)
	}
	if !strings.Contains(out, "✅") || !strings.Contains(out, "◻️") {
		t.Fatalf("status glyphs missing")
	}
	if strings.Contains(out, "No tasks yet!") {
		t.Fatalf("empty state must not show with tasks")
	}
}

func TestRenderIndexTitle(t *testing.T) {
	s := NewServer(tasks.NewStore(filepath.Join(t.TempDir(), "tasks.json")))
	s.cfg.UI.Title = "Chores"
	var buf bytes.Buffer
	if err := s.renderIndex(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "<title>📝 Chores</title>") {
		t.Fatalf("title not rendered")
	}
}

func TestParseIndex(t *testing.T) {
	cases := map[string]bool{"0": true, "42": true, "007": true, "": false, "-1": false, "+1": false, "1.5": false, "x": false}
	for in, want := range cases {
		if _, ok := parseIndex(in); ok != want {
			t.Fatalf("parseIndex(%q) ok=%v want %v", in, ok, want)
		}
	}
	if i, ok := parseIndex("99999999999999999999"); !ok || i != math.MaxInt {
		t.Fatalf("overflowing index should map to MaxInt, got %d %v", i, ok)
	}
}

func TestTruncate(t *testing.T) {
	if truncate("hello", 10) != "hello" {
		t.Fatalf("truncate no-op")
	}
	if truncate("helloworld", 5) != "hello..." {
		t.Fatalf("truncate short")
	}
}
