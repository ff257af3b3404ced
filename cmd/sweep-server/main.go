// cmd/sweep-server/main.go: HTTP tool server for the sweep engine
//
// Exposes gosweep tools as an HTTP endpoint for AI agent frameworks.
//
// Usage:
//
//	go run ./cmd/sweep-server -port 8080
//
// Tool call endpoint: POST /tool
// Schema endpoint:    GET  /schema
// Health endpoint:    GET  /health
//
// Every response carries an X-Request-ID header, copied from the request or
// freshly generated, and the same id prefixes the server's log lines.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/njchilds90/gosweep/mcp"
)

const maxBodyBytes = 1 << 20 // 1 MiB

func main() {
	port := flag.Int("port", 8080, "Port to listen on")
	callTimeout := flag.Duration("call-timeout", 30*time.Second, "Upper bound on a single tool call")
	flag.Parse()

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("gosweep tool server listening on %s", addr)
	log.Printf("  POST /tool  : execute a tool call")
	log.Printf("  GET  /schema: tool schema for agent registration")
	log.Printf("  GET  /health: health check")

	srv := &http.Server{
		Addr:              addr,
		Handler:           newMux(*callTimeout),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      *callTimeout + 15*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

func requestID(w http.ResponseWriter, r *http.Request) string {
	id := r.Header.Get("X-Request-ID")
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}
	w.Header().Set("X-Request-ID", id)
	return id
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newMux(callTimeout time.Duration) *http.ServeMux {
	mux := http.NewServeMux()

	// POST /tool: handle a tool call
	mux.HandleFunc("/tool", func(w http.ResponseWriter, r *http.Request) {
		id := requestID(w, r)
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("[%s] panic in /tool: %v\n%s", id, rec, string(debug.Stack()))
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()

		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		defer r.Body.Close()

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req mcp.ToolRequest
		if err := dec.Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		// Ensure there's no trailing junk.
		if dec.More() {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: trailing data"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), callTimeout)
		defer cancel()
		start := time.Now()
		resp := mcp.HandleToolCall(ctx, req)
		if resp.Error != "" {
			log.Printf("[%s] %s failed after %v: %s", id, req.Tool, time.Since(start), resp.Error)
		} else {
			log.Printf("[%s] %s done in %v", id, req.Tool, time.Since(start))
		}
		writeJSON(w, http.StatusOK, resp)
	})

	// GET /schema: return tool schema for agent registration
	mux.HandleFunc("/schema", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, mcp.MCPToolSpec())
	})

	// GET /health: liveness check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})
	return mux
}
