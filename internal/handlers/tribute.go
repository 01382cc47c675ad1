package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"tribute-portal/internal/backend"
	"tribute-portal/internal/events"
	"tribute-portal/internal/forms"
	"tribute-portal/internal/middleware"
	"tribute-portal/internal/models"
	"tribute-portal/internal/theme"
)

type TributeHandler struct {
	Backend *backend.Client
	Now     func() time.Time
}

func NewTributeHandler(b *backend.Client, now func() time.Time) *TributeHandler {
	return &TributeHandler{Backend: b, Now: now}
}

// ValidateStep checks one step of the creation form without saving anything.
func (h *TributeHandler) ValidateStep(c *gin.Context) {
	step, err := strconv.Atoi(c.DefaultQuery("step", "1"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid step"})
		return
	}
	var form forms.TributeForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := form.ValidateStep(step); err != nil {
		if _, ok := forms.AsValidation(err); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		respondError(c, "Tribute form is incomplete", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"step": step, "valid": true, "last": step == forms.TributeSteps})
}

// resolveTheme publishes the chosen preset when the form did not pick an
// existing theme.
func (h *TributeHandler) resolveTheme(ctx context.Context, form *forms.TributeForm) (int64, error) {
	if form.ThemeID != 0 || form.Preset == "" {
		return form.ThemeID, nil
	}
	preset, _ := theme.Preset(form.Preset)
	saved, err := h.Backend.SaveTheme(ctx, preset)
	if err != nil {
		return 0, err
	}
	return saved.ID, nil
}

func (h *TributeHandler) CreateTribute(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var form forms.TributeForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if err := form.Validate(); err != nil {
		respondError(c, "Tribute form is invalid", err)
		return
	}

	ctx := upstreamCtx(c)
	themeID, err := h.resolveTheme(ctx, &form)
	if err != nil {
		respondError(c, "Could not save theme", err)
		return
	}

	t := form.Tribute()
	t.UserID = userID
	t.ThemeID = themeID
	created, err := h.Backend.CreateTribute(ctx, t)
	if err != nil {
		respondError(c, "Could not create tribute", err)
		return
	}

	slog.Info("tribute created", "tribute_id", created.ID, "user_id", userID)
	c.JSON(http.StatusCreated, created)
}

// TributePage is the public view of a tribute: the record, its themed page
// and the events still to come.
type TributePage struct {
	Tribute  *models.Tribute `json:"tribute"`
	Page     theme.Page      `json:"page"`
	Upcoming []models.Event  `json:"upcoming_events"`
}

func (h *TributeHandler) GetTribute(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	ctx := upstreamCtx(c)

	t, err := h.Backend.TributeDetails(ctx, id)
	if err != nil {
		respondError(c, "Could not fetch tribute", err)
		return
	}
	if t.IsDeleted() && middleware.Role(c) != models.RoleAdmin {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tribute not found"})
		return
	}

	var (
		evs []models.Event
		th  models.Theme
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		evs, err = h.Backend.TributeEvents(gctx, id)
		return err
	})
	g.Go(func() error {
		th, _ = theme.Preset(theme.DefaultPreset)
		if t.ThemeID == 0 {
			return nil
		}
		got, err := h.Backend.Theme(gctx, t.ThemeID)
		if errors.Is(err, backend.ErrNotFound) {
			slog.Warn("tribute theme missing, using default", "tribute_id", id, "theme_id", t.ThemeID)
			return nil
		}
		if err != nil {
			return err
		}
		th = *got
		return nil
	})
	if err := g.Wait(); err != nil {
		respondError(c, "Could not fetch tribute", err)
		return
	}

	upcoming, invalid := events.Upcoming(evs, h.Now())
	if invalid > 0 {
		slog.Warn("skipped events with unreadable dates", "tribute_id", id, "count", invalid)
	}
	if upcoming == nil {
		upcoming = []models.Event{}
	}
	c.JSON(http.StatusOK, TributePage{Tribute: t, Page: theme.Apply(*t, th), Upcoming: upcoming})
}

// owned fetches the tribute and checks the caller may change it.
func (h *TributeHandler) owned(ctx context.Context, c *gin.Context, id int64) (*models.Tribute, bool) {
	userID, ok := currentUser(c)
	if !ok {
		return nil, false
	}
	t, err := h.Backend.TributeDetails(ctx, id)
	if err != nil {
		respondError(c, "Could not fetch tribute", err)
		return nil, false
	}
	if t.UserID != userID && middleware.Role(c) != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your tribute"})
		return nil, false
	}
	return t, true
}

func (h *TributeHandler) UpdateTribute(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var form forms.TributeForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if err := form.Validate(); err != nil {
		respondError(c, "Tribute form is invalid", err)
		return
	}

	ctx := upstreamCtx(c)
	existing, ok := h.owned(ctx, c, id)
	if !ok {
		return
	}
	themeID, err := h.resolveTheme(ctx, &form)
	if err != nil {
		respondError(c, "Could not save theme", err)
		return
	}

	t := form.Tribute()
	t.ID = existing.ID
	t.UserID = existing.UserID
	t.ThemeID = themeID
	t.Status = existing.Status
	t.DonationOptions = existing.DonationOptions
	updated, err := h.Backend.UpdateTribute(ctx, t)
	if err != nil {
		respondError(c, "Could not update tribute", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteTribute marks the tribute deleted. Admins may pass ?hard=true to
// remove it upstream for good.
func (h *TributeHandler) DeleteTribute(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	ctx := upstreamCtx(c)
	t, ok := h.owned(ctx, c, id)
	if !ok {
		return
	}

	if c.Query("hard") == "true" {
		if middleware.Role(c) != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only admins can purge tributes"})
			return
		}
		if err := h.Backend.DeleteTribute(ctx, id); err != nil {
			respondError(c, "Could not delete tribute", err)
			return
		}
		slog.Info("tribute purged", "tribute_id", id)
		c.Status(http.StatusNoContent)
		return
	}

	if t.IsDeleted() {
		c.Status(http.StatusNoContent)
		return
	}
	t.Status = models.TributeStatusDeleted
	if _, err := h.Backend.UpdateTribute(ctx, *t); err != nil {
		respondError(c, "Could not delete tribute", err)
		return
	}
	slog.Info("tribute deleted", "tribute_id", id)
	c.Status(http.StatusNoContent)
}
