package main

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"nagapi/api/command"
	"nagapi/api/config"
	"nagapi/api/handler"
	"nagapi/api/hub"
	"nagapi/api/logtail"
	"nagapi/api/poller"
	"nagapi/api/state"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	store := state.New()

	// The command file is the only thing we cannot run without: with it
	// missing, no command could ever reach the daemon.
	commands, err := command.NewWriter(cfg.CommandFile)
	if err != nil {
		log.Fatalf("command channel: %v", err)
	}

	// Parse allowed origins: always include localhost, plus configured extras.
	allowedOrigins := []string{"http://localhost:5173", "http://localhost:3000"}
	if cfg.AllowedOrigins != "" {
		for _, o := range strings.Split(cfg.AllowedOrigins, ",") {
			o = strings.TrimSpace(o)
			if o != "" {
				allowedOrigins = append(allowedOrigins, o)
			}
		}
	}

	ws := hub.New(allowedOrigins)
	go ws.Run()

	interval := time.Duration(cfg.PollIntervalSec) * time.Second

	tasksCtx, stopTasks := context.WithCancel(context.Background())
	defer stopTasks()

	go (&poller.Poller{
		Store:      store,
		StatusFile: cfg.StatusFile,
		Interval:   interval,
		WS:         ws,
	}).Run(tasksCtx)

	go (&logtail.Tailer{
		Store:    store,
		LogFile:  cfg.LogFile,
		Interval: interval,
	}).Run(tasksCtx)

	h := handler.New(store, commands, ws, cfg)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// Optional bearer token auth when NAGAPI_API_TOKEN is set
	if cfg.APIToken != "" {
		r.Use(bearerAuth(cfg.APIToken))
		log.Println("API token auth enabled")
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)
		r.Get("/version", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{"version": Version})
		})
		r.Get("/state", h.GetState)
		r.Get("/state/{host}", h.GetHost)
		r.Get("/state/{host}/services/{service}", h.GetService)
		r.Get("/downtimes", h.ListDowntimes)
		r.Get("/downtimes/{id}", h.GetDowntime)
		r.Get("/log", h.GetLog)
		r.Post("/downtime", h.ScheduleDowntime)
		r.Delete("/downtime", h.CancelDowntime)
		r.Post("/command", h.SubmitCommand)
	})

	r.Get("/ws", ws.HandleConnect)

	srv := &http.Server{
		Addr:    cfg.BindAddr + ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Printf("nagapi %s listening on %s:%s (status=%s)", Version, cfg.BindAddr, cfg.Port, cfg.StatusFile)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")
	stopTasks()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	srv.Shutdown(ctx)
}

func bearerAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Health, version and the websocket endpoint stay open.
			if r.URL.Path == "/ws" || r.URL.Path == "/api/health" || r.URL.Path == "/api/version" {
				next.ServeHTTP(w, r)
				return
			}
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if subtle.ConstantTimeCompare([]byte(auth[7:]), []byte(token)) != 1 {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
