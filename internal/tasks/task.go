// Package tasks holds the to-do list model and its file-backed store.
//
// A task has no identifier of its own: handlers address it by its current
// position in the list, so indices shift after a delete or clear.
package tasks

import "strings"

type Task struct {
	Text string `json:"task"`
	Done bool   `json:"done"`
}

type Stats struct {
	Total   int
	Done    int
	Pending int
}

func Summarize(list []Task) Stats {
	st := Stats{Total: len(list)}
	for _, t := range list {
		if t.Done {
			st.Done++
		}
	}
	st.Pending = st.Total - st.Done
	return st
}

// AddTask appends text as a pending task. Whitespace-only text is ignored.
func AddTask(list []Task, text string) ([]Task, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return list, false
	}
	return append(list, Task{Text: text}), true
}

func inRange(list []Task, i int) bool { return i >= 0 && i < len(list) }

// ToggleTask flips the done flag at i in place.
func ToggleTask(list []Task, i int) bool {
	if !inRange(list, i) {
		return false
	}
	list[i].Done = !list[i].Done
	return true
}

func DeleteTask(list []Task, i int) ([]Task, bool) {
	if !inRange(list, i) {
		return list, false
	}
	out := make([]Task, 0, len(list)-1)
	out = append(out, list[:i]...)
	out = append(out, list[i+1:]...)
	return out, true
}

// ClearDone keeps the pending tasks in their original order.
func ClearDone(list []Task) ([]Task, int) {
	out := make([]Task, 0, len(list))
	for _, t := range list {
		if !t.Done {
			out = append(out, t)
		}
	}
	return out, len(list) - len(out)
}
