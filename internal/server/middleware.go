package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nikolayk812/storefront/internal/identity"
	"github.com/nikolayk812/storefront/internal/port"
)

type ctxKey string

const (
	ctxKeyRequestID ctxKey = "request_id"
	ctxKeyCartOwner ctxKey = "cart_owner"
	ctxKeyClaims    ctxKey = "auth_claims"
)

const cartOwnerCookie = "cart_owner"

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-Id")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", reqID)
		ctx := context.WithValue(r.Context(), ctxKeyRequestID, reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic recovered",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Any("panic", rec))
				writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rec, r)

		s.logger.Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.statusCode),
			zap.Duration("duration", time.Since(start)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (r *statusRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

// cartOwnerMiddleware resolves which cart a request operates on. The
// owner id travels in a header (API clients) or a cookie (browsers);
// first contact mints a new id and sets the cookie.
func cartOwnerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ownerID := r.Header.Get("X-Cart-Owner")
		if ownerID == "" {
			if cookie, err := r.Cookie(cartOwnerCookie); err == nil {
				ownerID = cookie.Value
			}
		}
		if ownerID == "" {
			ownerID = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     cartOwnerCookie,
				Value:    ownerID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), ctxKeyCartOwner, ownerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// identityMiddleware parses an optional Bearer token. Absent or invalid
// tokens leave the request anonymous; gating happens downstream.
func (s *Server) identityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			if claims, err := s.verifier.Verify(token); err == nil {
				ctx := context.WithValue(r.Context(), ctxKeyClaims, claims)
				r = r.WithContext(ctx)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// adminOnlyMiddleware rejects requests without verified admin claims.
func adminOnlyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFromContext(r.Context())
		if !ok || claims.Role != identity.RoleAdmin {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func cartOwnerFromContext(ctx context.Context) string {
	ownerID, _ := ctx.Value(ctxKeyCartOwner).(string)
	return ownerID
}

func claimsFromContext(ctx context.Context) (port.IdentityClaims, bool) {
	claims, ok := ctx.Value(ctxKeyClaims).(port.IdentityClaims)
	return claims, ok
}
