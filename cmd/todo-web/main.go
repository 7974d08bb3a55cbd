package main

import (
	"flag"
	stdlog "log"
	"net/http"
	"os"
	"time"

	"github.com/elpatron68/todo-web/internal/auth"
	"github.com/elpatron68/todo-web/internal/config"
	applog "github.com/elpatron68/todo-web/internal/log"
	"github.com/elpatron68/todo-web/internal/server"
	"github.com/elpatron68/todo-web/internal/tasks"
)

func main() {
	configFlag := flag.String("config", "", "path to config.yaml or config.toml")
	listenFlag := flag.String("listen", "", "listen address (overrides TODOWEB_LISTEN and config)")
	tasksFlag := flag.String("tasks", "", "path to the task file (overrides config)")
	flag.Parse()

	configPath := *configFlag
	if configPath == "" {
		configPath = config.FindFile("config.yaml", "config.toml", "../../config.yaml")
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		stdlog.Fatalf("config error: %v", err)
	}
	if *tasksFlag != "" {
		cfg.TasksFile = *tasksFlag
	}

	applog.InitFromEnvFallback(cfg.Logging.Level)
	applog.SetFormat(cfg.Logging.Format)

	userStore, err := buildUserStore(cfg)
	if err != nil {
		stdlog.Fatalf("invalid user in config: %v", err)
	}

	if err := tasks.EnsureReady(cfg.TasksFile); err != nil {
		stdlog.Fatalf("startup check failed: %v", err)
	}
	store := tasks.NewStore(cfg.TasksFile)

	// a nil *InMemoryUserStore must not reach the server as a non-nil interface
	var srv *server.Server
	if userStore != nil {
		srv = server.NewServerWithConfig(store, userStore, cfg)
	} else {
		srv = server.NewServerWithConfig(store, nil, cfg)
	}

	listenAddr := resolveListenAddress(cfg, *listenFlag)
	applog.Infof("to-do list listening on %s (tasks in %s)", listenAddr, store.Path())
	httpSrv := &http.Server{
		Addr:              listenAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := httpSrv.ListenAndServe(); err != nil {
		stdlog.Fatalf("server error: %v", err)
	}
}

// resolveListenAddress picks flag > TODOWEB_LISTEN > config > :5000.
func resolveListenAddress(cfg *config.Config, flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv("TODOWEB_LISTEN"); v != "" {
		return v
	}
	if cfg != nil && cfg.Listen != "" {
		return cfg.Listen
	}
	return ":5000"
}

// buildUserStore returns nil when no users are configured, which keeps the app open.
// TODOWEB_USER/TODOWEB_PASS add one extra user with a plain password.
func buildUserStore(cfg *config.Config) (*auth.InMemoryUserStore, error) {
	us := auth.NewInMemoryUserStore()
	for _, u := range cfg.Users {
		if u.Username == "" || u.PasswordHash == "" {
			continue
		}
		if err := us.AddUserHash(u.Username, []byte(u.PasswordHash)); err != nil {
			return nil, err
		}
	}
	if name, pass := os.Getenv("TODOWEB_USER"), os.Getenv("TODOWEB_PASS"); name != "" && pass != "" {
		if err := us.AddUserPlain(name, pass); err != nil {
			return nil, err
		}
	}
	if us.Len() == 0 {
		return nil, nil
	}
	return us, nil
}
