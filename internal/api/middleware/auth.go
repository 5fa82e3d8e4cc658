package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/iglimehmetaj/service-platform2/internal/api/handlers"
	"github.com/iglimehmetaj/service-platform2/internal/domain"
	"github.com/iglimehmetaj/service-platform2/pkg/jwt"
)

const (
	msgMissingToken = "authentication required"
	msgInvalidToken = "invalid or expired token"

	// Browsers cannot set headers on a websocket handshake.
	tokenQueryParam = "access_token"
)

type callerKey struct{}

type TokenValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth resolves the bearer token into a domain.Caller stored on the request context.
func Auth(validator TokenValidator, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.Warn("%s %s - token rejected: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			caller, err := callerFromClaims(claims)
			if err != nil {
				logger.Warn("%s %s - malformed claims: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
		})
	}
}

func WithCaller(ctx context.Context, caller *domain.Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// GetCaller returns nil for unauthenticated requests.
func GetCaller(ctx context.Context) *domain.Caller {
	caller, _ := ctx.Value(callerKey{}).(*domain.Caller)
	return caller
}

func extractToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	return strings.TrimSpace(r.URL.Query().Get(tokenQueryParam))
}

func callerFromClaims(claims *jwt.Claims) (*domain.Caller, error) {
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, err
	}

	caller := &domain.Caller{UserID: userID, Role: domain.Role(claims.Role)}
	if claims.CompanyID != "" {
		companyID, err := uuid.Parse(claims.CompanyID)
		if err != nil {
			return nil, err
		}
		caller.CompanyID = &companyID
	}
	return caller, nil
}
