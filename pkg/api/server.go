// Package api serves decoded DBF tables as a read-only JSON gateway over
// a directory of .dbf files and their companion memo files.
package api

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the gateway's chi router with all routes and middleware
// configured.
func NewRouter(server *Server, metrics *Metrics) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", metrics.InstrumentHandler("GET", "/api/v1/health", server.handleHealth))
		r.Get("/tables", metrics.InstrumentHandler("GET", "/api/v1/tables", server.handleListTables))
		r.Get("/tables/{table}", metrics.InstrumentHandler("GET", "/api/v1/tables/{table}", server.handleGetSchema))
		r.Get("/tables/{table}/records", metrics.InstrumentHandler("GET", "/api/v1/tables/{table}/records", server.handleGetRecords))
	})

	return r
}

// StartServer starts the HTTP gateway and blocks until it exits
func StartServer(config ServerConfig) error {
	metrics := NewMetrics()
	server := NewServer(NewCatalog(config.DataDir), config, metrics)
	router := NewRouter(server, metrics)

	addr := fmt.Sprintf("%s:%d", config.Bind, config.Port)
	log.Printf("dbfkit gateway listening on %s, serving %s", addr, config.DataDir)
	return http.ListenAndServe(addr, router)
}
