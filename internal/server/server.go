package server

import (
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/elpatron68/todo-web/internal/auth"
	"github.com/elpatron68/todo-web/internal/config"
	applog "github.com/elpatron68/todo-web/internal/log"
	"github.com/elpatron68/todo-web/internal/tasks"
	"github.com/elpatron68/todo-web/internal/ui"
)

type Server struct {
	store     *tasks.Store
	userStore auth.UserStore
	mux       *http.ServeMux
	layoutTpl *template.Template
	cfg       *config.Config
	activity  *ui.ActivityLog
}

const faviconSVG = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 64 64">
  <rect rx="12" width="64" height="64" fill="#667eea"/>
  <path d="M26 44L14 32l4-4 8 8 20-20 4 4-24 24z" fill="#fff"/>
</svg>`

const layoutTpl = `<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>📝 {{.Title}}</title><link rel="icon" href="/favicon.svg" type="image/svg+xml">
<meta name="viewport" content="width=device-width, initial-scale=1">
<style>
*{margin:0;padding:0;box-sizing:border-box;font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,sans-serif}
body{background:linear-gradient(135deg,#667eea 0%,#764ba2 100%);min-height:100vh;display:flex;justify-content:center;align-items:center;padding:20px}
.container{background:#fff;border-radius:20px;padding:30px;box-shadow:0 20px 40px rgba(0,0,0,0.2);width:100%;max-width:500px}
.header{text-align:center;margin-bottom:30px}
.header .sub{color:#666}
h1{color:#333;font-size:2.5em;margin-bottom:10px;display:flex;align-items:center;justify-content:center;gap:15px}
.task-form{display:flex;gap:10px;margin-bottom:25px}
.task-input{flex:1;padding:15px;border:2px solid #e0e0e0;border-radius:10px;font-size:1em}
.task-input:focus{outline:none;border-color:#667eea}
.add-btn{background:#667eea;color:#fff;border:none;padding:15px 25px;border-radius:10px;cursor:pointer;font-weight:bold;transition:background 0.3s}
.add-btn:hover{background:#764ba2}
.tasks-list{margin-top:20px}
.task-item{display:flex;align-items:center;justify-content:space-between;padding:15px;background:#f8f9fa;border-radius:10px;margin-bottom:10px;border-left:5px solid #667eea}
.task-item.done{opacity:0.7;border-left-color:#6bcf7f}
.task-item .glyph{font-size:1.2em}
.task-text{flex:1;margin-left:15px;font-size:1.1em;word-break:break-word}
.task-text.done-text{text-decoration:line-through;color:#666}
.task-actions{display:flex;gap:10px}
.action-btn{padding:8px 15px;border-radius:5px;font-weight:bold;text-decoration:none;color:#fff;transition:transform 0.2s}
.action-btn:hover{transform:scale(1.05)}
.done-btn{background:#6bcf7f}
.delete-btn{background:#ff6b6b}
.empty-state{text-align:center;padding:40px;color:#666}
.stats{text-align:center;margin-top:20px;color:#666;padding:15px;background:#f8f9fa;border-radius:10px}
.action-buttons{display:flex;gap:10px;margin-top:20px;justify-content:center}
.clear-btn{background:#ffd93d;color:#333;padding:10px 20px;border-radius:5px;font-weight:bold;text-decoration:none}
.clear-btn.danger{background:#ff6b6b;color:#fff}
.activity{margin-top:16px;border-top:1px solid #eee;padding-top:8px;font-size:0.85em;color:#666}
.activity .hdr{font-weight:600;margin-bottom:4px}
.activity ul{list-style:none}
.activity .ts{color:#999}
.activity .act{font-weight:600;color:#333}
.activity .user{color:#667eea}
</style>
</head><body>
<div class="container">
{{template "content" .}}
</div>
<script>
document.addEventListener('DOMContentLoaded', function() {
  var input = document.querySelector('.task-input');
  if (input) { input.focus(); }
});
</script>
</body></html>`

func NewServer(store *tasks.Store) *Server {
	return NewServerWithConfig(store, nil, config.Default())
}

// NewServerWithConfig wires the handlers. userStore may be nil, which
// leaves every route unauthenticated.
func NewServerWithConfig(store *tasks.Store, userStore auth.UserStore, cfg *config.Config) *Server {
	s := &Server{store: store, userStore: userStore, cfg: cfg}
	s.mux = http.NewServeMux()
	s.activity = ui.NewActivityLog(cfg.UI.ActivityMax)

	baseTpl := template.New("layout").Funcs(template.FuncMap{
		"taskText": s.taskTextFunc(),
	})
	s.layoutTpl = template.Must(baseTpl.Parse(layoutTpl))
	template.Must(s.layoutTpl.Parse(taskListTpl))
	template.Must(s.layoutTpl.Parse(indexTpl))

	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /favicon.svg", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/svg+xml; charset=utf-8")
		_, _ = w.Write([]byte(faviconSVG))
	})
	s.mux.HandleFunc("GET /favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/favicon.svg", http.StatusMovedPermanently)
	})
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	s.mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := s.renderIndex(w, s.store.Load()); err != nil {
			applog.Errorf("render index: %v", err)
		}
	})

	s.mux.HandleFunc("POST /add", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}
		text := r.FormValue("task")
		added, err := s.store.Add(text)
		if s.failed(w, "add", err) {
			return
		}
		if added {
			s.record(r, "add", truncate(strings.TrimSpace(text), 60))
		}
		s.home(w, r)
	})

	s.mux.HandleFunc("GET /toggle/{index}", func(w http.ResponseWriter, r *http.Request) {
		i, ok := parseIndex(r.PathValue("index"))
		if !ok {
			http.NotFound(w, r)
			return
		}
		changed, err := s.store.Toggle(i)
		if s.failed(w, "toggle", err) {
			return
		}
		if changed {
			s.record(r, "toggle", "#"+strconv.Itoa(i))
		}
		s.home(w, r)
	})

	s.mux.HandleFunc("GET /delete/{index}", func(w http.ResponseWriter, r *http.Request) {
		i, ok := parseIndex(r.PathValue("index"))
		if !ok {
			http.NotFound(w, r)
			return
		}
		changed, err := s.store.Delete(i)
		if s.failed(w, "delete", err) {
			return
		}
		if changed {
			s.record(r, "delete", "#"+strconv.Itoa(i))
		}
		s.home(w, r)
	})

	s.mux.HandleFunc("GET /clear", func(w http.ResponseWriter, r *http.Request) {
		if s.failed(w, "clear", s.store.ClearAll()) {
			return
		}
		s.record(r, "clear", "all tasks")
		s.home(w, r)
	})

	s.mux.HandleFunc("GET /clear_done", func(w http.ResponseWriter, r *http.Request) {
		removed, err := s.store.ClearDone()
		if s.failed(w, "clear_done", err) {
			return
		}
		s.record(r, "clear_done", fmt.Sprintf("%d completed", removed))
		s.home(w, r)
	})
}

// home redirects back to the list whatever the outcome of the action was.
func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusFound)
}

// record notes a mutation in the activity log, tagged with the signed-in user if any.
func (s *Server) record(r *http.Request, action, detail string) {
	user, _ := auth.UsernameFromRequest(r)
	s.activity.Append(user, action, detail)
}

// failed answers 500 when persisting the task file did not work.
func (s *Server) failed(w http.ResponseWriter, action string, err error) bool {
	if err == nil {
		return false
	}
	applog.Errorf("%s: %v", action, err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	return true
}

// Activity exposes the in-memory activity log.
func (s *Server) Activity() *ui.ActivityLog { return s.activity }

func (s *Server) Handler() http.Handler {
	var h http.Handler = s.mux
	if s.userStore != nil {
		protected := auth.BasicAuthMiddleware(s.userStore, "todo", s.mux)
		h = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// liveness stays reachable without credentials
			if r.URL.Path == "/healthz" {
				s.mux.ServeHTTP(w, r)
				return
			}
			protected.ServeHTTP(w, r)
		})
	}
	return requestLogger(h)
}
