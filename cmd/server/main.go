package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/pterm/pterm"

	"joffre/internal/engine"
	"joffre/internal/server"
	"joffre/internal/store"
)

func main() {
	logger := slog.New(pterm.NewSlogHandler(&pterm.DefaultLogger))
	slog.SetDefault(logger)

	addr := envStr("JOFFRE_ADDR", ":8080")
	dbPath := envStr("JOFFRE_DB", "joffre.db")
	turnTimeout := envDuration("JOFFRE_TURN_TIMEOUT", 30*time.Second)

	st, err := store.Open(dbPath)
	if err != nil {
		logger.Error("open store", "path", dbPath, "err", err)
		os.Exit(1)
	}
	defer st.Close()

	registry := server.NewRegistry()
	hub := server.NewHub(registry, st, engine.ClassicPreset(), turnTimeout)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.HandleWS)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
		summary, err := st.Summarize()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(summary)
	})

	logger.Info("listening", "addr", addr, "db", dbPath, "turnTimeout", turnTimeout)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("serve", "err", err)
		os.Exit(1)
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
