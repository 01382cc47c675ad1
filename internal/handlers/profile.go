package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tribute-portal/internal/backend"
	"tribute-portal/internal/store"
)

type ProfileHandler struct {
	Backend *backend.Client
	Store   *store.Store
	TTL     time.Duration
}

func NewProfileHandler(b *backend.Client, s *store.Store, ttl time.Duration) *ProfileHandler {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ProfileHandler{Backend: b, Store: s, TTL: ttl}
}

// GetMyProfile serves the cached profile while it is fresh. When the upstream
// is unreachable a stale copy is better than nothing.
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	cached, err := h.Store.Profile(c.Request.Context(), userID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		slog.Warn("profile cache read failed", "user_id", userID, "error", err)
	}
	if cached != nil && cached.Fresh(h.TTL, time.Now()) {
		c.JSON(http.StatusOK, gin.H{"profile": cached.User, "stale": false})
		return
	}

	h.refresh(c, userID, cached)
}

// RefreshMyProfile bypasses the cache.
func (h *ProfileHandler) RefreshMyProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	h.refresh(c, userID, nil)
}

func (h *ProfileHandler) refresh(c *gin.Context, userID int64, fallback *store.CachedProfile) {
	u, err := h.Backend.Profile(upstreamCtx(c))
	if err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			// The upstream no longer accepts this token; forget what it showed us.
			if err := h.Store.DeleteProfile(c.Request.Context(), userID); err != nil {
				slog.Warn("profile cache evict failed", "user_id", userID, "error", err)
			}
			respondError(c, "Could not fetch profile", err)
			return
		}
		if fallback != nil {
			slog.Warn("serving stale profile", "user_id", userID, "error", err)
			c.JSON(http.StatusOK, gin.H{"profile": fallback.User, "stale": true})
			return
		}
		respondError(c, "Could not fetch profile", err)
		return
	}
	if err := h.Store.SaveProfile(c.Request.Context(), userID, *u); err != nil {
		slog.Warn("profile cache write failed", "user_id", userID, "error", err)
	}
	c.JSON(http.StatusOK, gin.H{"profile": u, "stale": false})
}
