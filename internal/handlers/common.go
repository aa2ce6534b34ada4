package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/financas-app/financas_backend/internal/apperrors"
	"github.com/financas-app/financas_backend/internal/core/domain"
	"github.com/financas-app/financas_backend/internal/middleware"
	"github.com/financas-app/financas_backend/internal/utils/dates"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidators installs the binding validators the DTOs rely on.
// daystring accepts a calendar day ("2006-01-02") or an RFC3339 timestamp.
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("daystring", func(fl validator.FieldLevel) bool {
			_, err := dates.ParseDay(fl.Field().String())
			return err == nil
		})
	}
}

// mustAuthUser pulls the authenticated user out of the context. A missing
// user means the auth middleware did not run; the request is aborted.
func mustAuthUser(c *gin.Context) (domain.AuthUser, bool) {
	user, ok := middleware.GetAuthUserFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Authenticated user not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return domain.AuthUser{}, false
	}
	return user, true
}

// respondServiceError maps the application error taxonomy onto HTTP
// statuses. Connectivity failures surface as 503 so the client can tell
// "offline" from a data error.
func respondServiceError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Operation forbidden", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Resource conflict", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConnectivity):
		logger.Warn("Cloud store unreachable", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrAuthExpired):
		logger.Warn("Session expired", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error(), "code": "auth_expired"})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// scopeFromQuery reads the ?scope= parameter, defaulting to single.
func scopeFromQuery(c *gin.Context) domain.UpdateScope {
	switch c.Query("scope") {
	case string(domain.ScopeFuture):
		return domain.ScopeFuture
	case string(domain.ScopeAll):
		return domain.ScopeAll
	default:
		return domain.ScopeSingle
	}
}
