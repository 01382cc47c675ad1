package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tribute-portal/internal/backend"
	"tribute-portal/internal/forms"
	"tribute-portal/internal/middleware"
	"tribute-portal/internal/store"
)

// upstreamCtx carries the caller's token to every upstream call.
func upstreamCtx(c *gin.Context) context.Context {
	return backend.WithToken(c.Request.Context(), middleware.Token(c))
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return id, true
}

func currentUser(c *gin.Context) (int64, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		slog.Error("user id not found in context", "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error: user not found"})
	}
	return id, ok
}

// respondError maps err to a status and writes the JSON error body. Upstream
// client errors keep their status; upstream server errors become 502.
func respondError(c *gin.Context, msg string, err error) {
	c.Error(err)

	if fields, ok := forms.AsValidation(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": fields})
		return
	}
	if errors.Is(err, backend.ErrNotFound) || errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": msg + ": not found"})
		return
	}

	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		status := http.StatusBadGateway
		switch apiErr.StatusCode {
		case http.StatusBadRequest, http.StatusUnprocessableEntity:
			status = http.StatusBadRequest
		case http.StatusUnauthorized, http.StatusForbidden, http.StatusConflict:
			status = apiErr.StatusCode
		}
		slog.Warn(msg, "error", err, "upstream_status", apiErr.StatusCode)
		body := gin.H{"error": msg}
		if apiErr.Message != "" {
			body["detail"] = apiErr.Message
		}
		c.JSON(status, body)
		return
	}

	if errors.Is(err, context.Canceled) {
		c.Status(499)
		return
	}
	slog.Error(msg, "error", err, "path", c.Request.URL.Path)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error."})
}
