package tasks

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	applog "github.com/elpatron68/todo-web/internal/log"
)

// Store reads and rewrites the whole task list on every call. It keeps no
// state between calls and takes no locks, so concurrent writers race and the
// last Save wins.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

// Load returns the persisted tasks. A missing, unreadable or invalid file
// yields an empty list; the cause is only logged.
func (s *Store) Load() []Task {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applog.Debugf("task file %s does not exist yet", s.path)
		} else {
			applog.Warnf("reading task file %s: %v", s.path, err)
		}
		return []Task{}
	}
	list, err := decodeFile(data)
	if err != nil {
		applog.Warnf("ignoring task file %s: %v", s.path, err)
		return []Task{}
	}
	if list == nil {
		list = []Task{}
	}
	return list
}

// Save overwrites the file with the full list.
func (s *Store) Save(list []Task) error {
	if list == nil {
		list = []Task{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("marshal tasks: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write task file: %w", err)
	}
	return nil
}

func (s *Store) Add(text string) (bool, error) {
	list, changed := AddTask(s.Load(), text)
	if !changed {
		return false, nil
	}
	return true, s.Save(list)
}

func (s *Store) Toggle(index int) (bool, error) {
	list := s.Load()
	if !ToggleTask(list, index) {
		return false, nil
	}
	return true, s.Save(list)
}

func (s *Store) Delete(index int) (bool, error) {
	list, changed := DeleteTask(s.Load(), index)
	if !changed {
		return false, nil
	}
	return true, s.Save(list)
}

func (s *Store) ClearAll() error {
	return s.Save([]Task{})
}

// ClearDone drops completed tasks and reports how many were removed.
func (s *Store) ClearDone() (int, error) {
	list, removed := ClearDone(s.Load())
	return removed, s.Save(list)
}

// EnsureReady runs at startup: it creates the directory holding the task
// file and rejects a path that names a directory.
func EnsureReady(path string) error {
	if path == "" {
		return errors.New("task file path is empty")
	}
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		return fmt.Errorf("task file %s is a directory", path)
	}
	dir := filepath.Dir(path)
	if st, err := os.Stat(dir); err == nil && st.IsDir() {
		return nil
	}
	applog.Infof("creating directory %s for the task file", dir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create task directory: %w", err)
	}
	return nil
}
