package app

import (
	"net/http"
	"time"

	"github.com/budgetgarden/budgetgarden/internal/config"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const requestIdHeader = "X-Request-Id"

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, cfg config.Application) {
	r.Use(corsMiddleware(cfg.Cors))
	r.Use(requestLogging)
}

func corsMiddleware(cors config.Cors) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", cors.AllowOrigin)
			w.Header().Set("Access-Control-Allow-Methods", cors.AllowMethods)
			next.ServeHTTP(w, req)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// requestLogging tags every request with an id, reusing the one sent by the client.
func requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		requestId := req.Header.Get(requestIdHeader)
		if requestId == "" {
			requestId = uuid.NewString()
		}
		w.Header().Set(requestIdHeader, requestId)

		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, req)

		log.WithFields(log.Fields{
			"request_id": requestId,
			"method":     req.Method,
			"path":       req.URL.Path,
			"status":     recorder.status,
			"duration":   time.Since(start),
		}).Debug("Handled request")
	})
}
