package server

import (
	"bytes"
	"html/template"
	"io"
	"strings"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/elpatron68/todo-web/internal/tasks"
)

const taskListTpl = `{{define "tasklist"}}{{if not .}}
<div class="empty-state">
  <div>📭</div>
  <h3>No tasks yet!</h3>
  <p>Add your first task above.</p>
</div>
{{else}}{{range $i, $t := .}}
<div class="task-item{{if $t.Done}} done{{end}}">
  <span class="glyph">{{if $t.Done}}✅{{else}}◻️{{end}}</span>
  <span class="task-text{{if $t.Done}} done-text{{end}}">{{taskText $t.Text}}</span>
  <div class="task-actions">
    {{if not $t.Done}}<a href="/toggle/{{$i}}" class="action-btn done-btn">Done</a>{{end}}
    <a href="/delete/{{$i}}" class="action-btn delete-btn" onclick="return confirm('Are you sure you want to delete this task?')">Delete</a>
  </div>
</div>
{{end}}{{end}}{{end}}`

const indexTpl = `{{define "content"}}
<div class="header">
  <h1><span>📝</span> {{.Title}} <span>📝</span></h1>
  <p class="sub">Add, complete, and manage your tasks</p>
</div>
<form method="post" action="/add" class="task-form">
  <input type="text" name="task" class="task-input" placeholder="Enter a new task..." required>
  <button type="submit" class="add-btn">Add Task</button>
</form>
<div class="tasks-list">{{.TaskList}}</div>
<div class="stats">
  <strong>📊 Stats:</strong> {{.Stats.Total}} total tasks | {{.Stats.Done}} completed | {{.Stats.Pending}} pending
</div>
<div class="action-buttons">
  <a href="/clear_done" class="clear-btn">🗑️ Clear Completed</a>
  <a href="/clear" class="clear-btn danger" onclick="return confirm('Delete all tasks?')">🗑️ Clear All</a>
</div>
{{if .ShowActivity}}{{with .Activity}}
<div class="activity">
  <div class="hdr">Recent activity</div>
  <ul>{{range .}}<li><span class="ts">{{.When.Format "15:04:05"}}</span> {{with .User}}<span class="user">{{.}}</span> {{end}}<span class="act">{{.Action}}</span> {{.Detail}}</li>{{end}}</ul>
</div>
{{end}}{{end}}
{{end}}`

type indexData struct {
	Title        string
	TaskList     template.HTML
	Stats        tasks.Stats
	ShowActivity bool
	Activity     any
}

// renderTaskList renders the task rows, or the empty state for an empty list.
func (s *Server) renderTaskList(list []tasks.Task) (template.HTML, error) {
	var buf bytes.Buffer
	if err := s.layoutTpl.ExecuteTemplate(&buf, "tasklist", list); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// renderIndex writes the full page for list.
func (s *Server) renderIndex(w io.Writer, list []tasks.Task) error {
	frag, err := s.renderTaskList(list)
	if err != nil {
		return err
	}
	data := indexData{
		Title:        s.cfg.UI.Title,
		TaskList:     frag,
		Stats:        tasks.Summarize(list),
		ShowActivity: s.cfg.UI.ShowActivity,
	}
	if data.ShowActivity {
		if entries := s.activity.List(5); len(entries) > 0 {
			data.Activity = entries
		}
	}
	return s.layoutTpl.Execute(w, data)
}

func (s *Server) taskTextFunc() func(string) template.HTML {
	if !s.cfg.UI.Markdown {
		return func(text string) template.HTML {
			return template.HTML(template.HTMLEscapeString(text))
		}
	}
	return renderInlineMarkdown
}

// renderInlineMarkdown renders a single task line; raw HTML in the input is dropped.
func renderInlineMarkdown(text string) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions &^ parser.MathJax)
	r := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags | mdhtml.SkipHTML | mdhtml.HrefTargetBlank})
	out := strings.TrimSpace(string(markdown.ToHTML([]byte(text), p, r)))
	out = strings.TrimPrefix(out, "<p>")
	out = strings.TrimSuffix(out, "</p>")
	return template.HTML(out)
}
