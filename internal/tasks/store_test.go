package tasks

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "tasks.json"))
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	s := newTestStore(t)
	got := s.Load()
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", got)
	}
}

func TestLoadCorruptFileIsEmpty(t *testing.T) {
	cases := map[string]string{
		"not json":      "{{{",
		"object":        `{"task":"a"}`,
		"missing task":  `[{"done":true}]`,
		"wrong type":    `[{"task":1,"done":false}]`,
		"done not bool": `[{"task":"a","done":"yes"}]`,
		"trailing data": `[] []`,
		"empty file":    ``,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			s := newTestStore(t)
			if err := os.WriteFile(s.Path(), []byte(content), 0644); err != nil {
				t.Fatal(err)
			}
			if got := s.Load(); len(got) != 0 {
				t.Fatalf("expected empty list, got %+v", got)
			}
		})
	}
}

func TestLoadUnreadableFileIsEmpty(t *testing.T) {
	if runtime.GOOS == "windows" || os.Getuid() == 0 {
		t.Skip("permission bits not enforced")
	}
	s := newTestStore(t)
	if err := os.WriteFile(s.Path(), []byte(`[{"task":"a","done":false}]`), 0000); err != nil {
		t.Fatal(err)
	}
	if got := s.Load(); len(got) != 0 {
		t.Fatalf("expected empty list, got %+v", got)
	}
}

func TestLoadAcceptsIndentedFile(t *testing.T) {
	s := newTestStore(t)
	content := "[{\"task\": \"Buy milk\", \"done\": true}, {\"task\": \"Walk dog\", \"done\": false}]"
	if err := os.WriteFile(s.Path(), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	want := []Task{{Text: "Buy milk", Done: true}, {Text: "Walk dog"}}
	if got := s.Load(); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestSaveEmptyWritesArray(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save(nil); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]" {
		t.Fatalf("expected [], got %q", data)
	}
}

func TestSaveLoadRoundTripIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save([]Task{{Text: "a", Done: true}, {Text: "b <i>"}}); err != nil {
		t.Fatal(err)
	}
	before, _ := os.ReadFile(s.Path())
	if err := s.Save(s.Load()); err != nil {
		t.Fatal(err)
	}
	after, _ := os.ReadFile(s.Path())
	if !bytes.Equal(before, after) {
		t.Fatalf("round trip changed content:\n%s\n%s", before, after)
	}
}

func TestSaveToMissingDirectoryFails(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "missing", "tasks.json"))
	if err := s.Save([]Task{{Text: "a"}}); err == nil {
		t.Fatalf("expected write error")
	}
	if _, err := s.Add("b"); err == nil {
		t.Fatalf("expected Add to report the write error")
	}
}

func TestStoreScenario(t *testing.T) {
	s := newTestStore(t)
	if ok, err := s.Add("Buy milk"); !ok || err != nil {
		t.Fatalf("add: %v %v", ok, err)
	}
	if ok, err := s.Add("Walk dog"); !ok || err != nil {
		t.Fatalf("add: %v %v", ok, err)
	}
	if ok, err := s.Toggle(0); !ok || err != nil {
		t.Fatalf("toggle: %v %v", ok, err)
	}
	got := s.Load()
	want := []Task{{Text: "Buy milk", Done: true}, {Text: "Walk dog"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v want %+v", got, want)
	}
	if st := Summarize(got); st != (Stats{Total: 2, Done: 1, Pending: 1}) {
		t.Fatalf("unexpected stats %+v", st)
	}

	if ok, err := s.Toggle(5); ok || err != nil {
		t.Fatalf("toggle(5) should be a silent no-op: %v %v", ok, err)
	}
	if !reflect.DeepEqual(s.Load(), want) {
		t.Fatalf("toggle(5) changed the list")
	}
}

func TestStoreAddWhitespaceDoesNotWrite(t *testing.T) {
	s := newTestStore(t)
	if ok, err := s.Add("   "); ok || err != nil {
		t.Fatalf("expected no-op, got %v %v", ok, err)
	}
	if _, err := os.Stat(s.Path()); !os.IsNotExist(err) {
		t.Fatalf("no file should be written for a no-op add")
	}
}

func TestStoreDeleteAndClear(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save([]Task{{Text: "a", Done: true}, {Text: "b"}, {Text: "c", Done: true}}); err != nil {
		t.Fatal(err)
	}
	if ok, _ := s.Delete(3); ok {
		t.Fatalf("delete out of range should be a no-op")
	}
	if ok, err := s.Delete(1); !ok || err != nil {
		t.Fatalf("delete: %v %v", ok, err)
	}
	if got := s.Load(); !reflect.DeepEqual(got, []Task{{Text: "a", Done: true}, {Text: "c", Done: true}}) {
		t.Fatalf("unexpected after delete: %+v", got)
	}
	removed, err := s.ClearDone()
	if err != nil || removed != 2 {
		t.Fatalf("clear done: %d %v", removed, err)
	}
	if len(s.Load()) != 0 {
		t.Fatalf("expected empty list")
	}
	if _, err := s.Add("x"); err != nil {
		t.Fatal(err)
	}
	if err := s.ClearAll(); err != nil {
		t.Fatal(err)
	}
	if len(s.Load()) != 0 {
		t.Fatalf("clear all left tasks behind")
	}
}

func TestEnsureReady(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deeper", "tasks.json")
	if err := EnsureReady(path); err != nil {
		t.Fatalf("EnsureReady: %v", err)
	}
	if st, err := os.Stat(filepath.Dir(path)); err != nil || !st.IsDir() {
		t.Fatalf("parent directory not created")
	}
	if err := EnsureReady(dir); err == nil {
		t.Fatalf("expected error when path is a directory")
	}
	if err := EnsureReady(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
