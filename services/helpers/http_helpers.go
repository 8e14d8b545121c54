package helpers

import (
	"errors"
	"fmt"
	"net/http"

	"auction-gateway/internal/aggregationerrors"
	"auction-gateway/utils"

	"github.com/gin-gonic/gin"
)

// HeaderUserID carries the caller's user id; the auth layer in front of the service sets it
const HeaderUserID = "X-User-ID"

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, aggregationerrors.ErrAuctionNotFound):
		return http.StatusNotFound, "auction not found"
	case errors.Is(err, aggregationerrors.ErrInvalidAuction):
		return http.StatusBadRequest, "invalid auction details"
	case errors.Is(err, aggregationerrors.ErrInvalidFilter):
		return http.StatusBadRequest, "invalid auction filter"
	case errors.Is(err, aggregationerrors.ErrMissingOwner):
		return http.StatusUnauthorized, "missing user identity"
	case errors.Is(err, aggregationerrors.ErrNotOwner):
		return http.StatusForbidden, "only the owner may modify this auction"
	case errors.Is(err, aggregationerrors.ErrAuctionExists):
		return http.StatusConflict, "auction already exists"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
