package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/fredneedsausername/FreDiet/services"

	"github.com/gin-gonic/gin"
)

// respondError maps domain failures to stable machine-readable codes. Anything
// outside the taxonomy is a storage/internal fault: logged, never surfaced.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": "invalid input"})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials", "message": "invalid username or password"})
	case errors.Is(err, services.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated", "message": "authentication required"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "record not found"})
	case errors.Is(err, services.ErrDuplicateUsername):
		c.JSON(http.StatusConflict, gin.H{"error": "duplicate_username", "message": "username already taken"})
	default:
		slog.Error("storage error", "path", c.FullPath(), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error", "message": "internal server error"})
	}
}
