// Command mock-backend runs a deterministic Ark server for local runs and
// end-to-end tests. It serves both wire protocols, JSON and SSE, and picks
// a canned answer from the request content.
//
// Point seedkit at it with SEEDKIT_BASE_URL=http://localhost:9090.
//
// Configuration:
//
//	MOCK_PORT - Listen port (default: 9090)
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
)

func main() {
	port := os.Getenv("MOCK_PORT")
	if port == "" {
		port = "9090"
	}

	srv := &http.Server{Addr: ":" + port, Handler: newMux()}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("mock backend starting", "port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("mock backend failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("mock backend shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv.Shutdown(shutdownCtx)
}

func newMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /chat/completions", handleChatCompletions)
	mux.HandleFunc("POST /responses", handleResponses)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})
	return mux
}

// scenario is the canned answer chosen for a request.
type scenario struct {
	reasoning string
	text      []string
	tool      *cannedCall
}

type cannedCall struct {
	name      string
	arguments string
}

// classify picks a scenario from the last user text, the tool list and the
// thinking switch.
func classify(lastUser string, hasTools, thinking bool) scenario {
	var s scenario
	if thinking {
		s.reasoning = "The user wants a short answer."
	}
	switch {
	case hasTools:
		s.tool = &cannedCall{name: "get_weather", arguments: `{"location":"Beijing","unit":"celsius"}`}
	case strings.Contains(strings.ToLower(lastUser), "count from 1 to 5"):
		s.text = []string{"1", ", ", "2", ", ", "3", ", ", "4", ", ", "5"}
	default:
		s.text = []string{"Hello", ", ", "nice", " ", "day", "!"}
	}
	return s
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{"code": code, "message": message, "type": "BadRequest"},
	})
}

func modelOrDefault(model string) string {
	if model == "" {
		return "mock-model"
	}
	return model
}
