package server

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sandol-kakao-backend/internal/kakao"
)

type contextKey int

const loggerKey contextKey = iota

// requestLogger stamps every request with an id, attaches a request-scoped
// child logger to the context, and logs the request outcome.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)
		log := s.log.With(zap.String("request_id", requestID))
		r = r.WithContext(context.WithValue(r.Context(), loggerKey, log))
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Info("request handled",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)))
	})
}

// reqLog returns the request-scoped logger, falling back to the root logger
// when the middleware did not run (tests hitting handlers directly).
func (s *Server) reqLog(r *http.Request) *zap.Logger {
	if log, ok := r.Context().Value(loggerKey).(*zap.Logger); ok {
		return log
	}
	return s.log
}

// recoverer converts panics into the in-band apology card. The chat platform
// renders whatever body comes back with a 200; a bare 500 would surface as a
// silent dead turn to the user.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.log.Error("panic recovered",
					zap.Any("panic", rec),
					zap.String("path", r.URL.Path),
					zap.Stack("stack"))
				kakao.ErrorCard().Write(w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
