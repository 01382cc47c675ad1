package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tribute-portal/internal/backend"
	"tribute-portal/internal/models"
	"tribute-portal/internal/store"
	"tribute-portal/internal/theme"
)

type ThemeHandler struct {
	Backend *backend.Client
	Store   *store.Store
}

func NewThemeHandler(b *backend.Client, s *store.Store) *ThemeHandler {
	return &ThemeHandler{Backend: b, Store: s}
}

func (h *ThemeHandler) ListThemes(c *gin.Context) {
	themes, err := h.Backend.Themes(upstreamCtx(c))
	if err != nil {
		respondError(c, "Could not fetch themes", err)
		return
	}
	if themes == nil {
		themes = []models.Theme{}
	}
	c.JSON(http.StatusOK, themes)
}

func (h *ThemeHandler) ListPresets(c *gin.Context) {
	names := theme.PresetNames()
	out := make([]models.Theme, 0, len(names))
	for _, n := range names {
		p, _ := theme.Preset(n)
		out = append(out, p)
	}
	c.JSON(http.StatusOK, gin.H{"default": theme.DefaultPreset, "presets": out})
}

type CreateDraftRequest struct {
	Name      string `json:"name"`
	TributeID int64  `json:"tribute_id"`
	// Start from an upstream theme, or from a preset when ThemeID is zero.
	ThemeID int64  `json:"theme_id"`
	Preset  string `json:"preset"`
}

func (h *ThemeHandler) CreateDraft(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req CreateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	var base models.Theme
	if req.ThemeID != 0 {
		t, err := h.Backend.Theme(upstreamCtx(c), req.ThemeID)
		if err != nil {
			respondError(c, "Could not fetch theme", err)
			return
		}
		base = *t
	} else {
		name := strings.ToLower(strings.TrimSpace(req.Preset))
		if name == "" {
			name = theme.DefaultPreset
		}
		p, ok := theme.Preset(name)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown preset " + req.Preset})
			return
		}
		base = p
	}

	d := store.NewDraft(userID, base)
	d.TributeID = req.TributeID
	if name := strings.TrimSpace(req.Name); name != "" {
		d.Name = name
	}
	if err := h.Store.CreateDraft(c.Request.Context(), d); err != nil {
		respondError(c, "Could not create draft", err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

func (h *ThemeHandler) ListDrafts(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	drafts, err := h.Store.Drafts(c.Request.Context(), userID)
	if err != nil {
		respondError(c, "Could not list drafts", err)
		return
	}
	c.JSON(http.StatusOK, drafts)
}

// draft loads the caller's draft named by :draftID.
func (h *ThemeHandler) draft(c *gin.Context) (*store.ThemeDraft, bool) {
	userID, ok := currentUser(c)
	if !ok {
		return nil, false
	}
	d, err := h.Store.Draft(c.Request.Context(), userID, c.Param("draftID"))
	if err != nil {
		respondError(c, "Could not load draft", err)
		return nil, false
	}
	return d, true
}

func (h *ThemeHandler) GetDraft(c *gin.Context) {
	d, ok := h.draft(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": d, "preview": previewClasses(d.Layout)})
}

func previewClasses(l models.Layout) []theme.RenderedSection {
	out := make([]theme.RenderedSection, 0, len(l))
	for _, s := range l {
		out = append(out, theme.RenderedSection{Name: s.Name, Class: theme.WidthClass(s.Width)})
	}
	return out
}

type UpdateDraftRequest struct {
	Name        *string         `json:"name"`
	TributeID   *int64          `json:"tribute_id"`
	Layout      models.Layout   `json:"layout"`
	Palette     *models.Palette `json:"palette"`
	BannerStyle *string         `json:"banner_style"`
}

func (h *ThemeHandler) UpdateDraft(c *gin.Context) {
	var req UpdateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	d, ok := h.draft(c)
	if !ok {
		return
	}

	if req.Layout != nil {
		if err := theme.Validate(req.Layout); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		d.Layout = req.Layout
	}
	if req.Name != nil {
		d.Name = strings.TrimSpace(*req.Name)
	}
	if req.TributeID != nil {
		d.TributeID = *req.TributeID
	}
	if req.Palette != nil {
		d.Palette = *req.Palette
	}
	if req.BannerStyle != nil {
		d.BannerStyle = *req.BannerStyle
	}
	h.save(c, d)
}

func (h *ThemeHandler) save(c *gin.Context, d *store.ThemeDraft) {
	if err := h.Store.UpdateDraft(c.Request.Context(), d); err != nil {
		respondError(c, "Could not save draft", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": d, "preview": previewClasses(d.Layout)})
}

type MoveSectionRequest struct {
	From *int `json:"from" binding:"required"`
	To   *int `json:"to" binding:"required"`
}

// MoveSection is the drag-and-drop reorder of the builder.
func (h *ThemeHandler) MoveSection(c *gin.Context) {
	var req MoveSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	d, ok := h.draft(c)
	if !ok {
		return
	}
	layout, err := theme.Move(d.Layout, *req.From, *req.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	d.Layout = layout
	h.save(c, d)
}

type SectionRequest struct {
	Op    string       `json:"op" binding:"required,oneof=add remove width"`
	Name  string       `json:"name" binding:"required"`
	Width models.Width `json:"width"`
	// At is the insert position for add; nil appends.
	At *int `json:"at"`
}

func (h *ThemeHandler) EditSection(c *gin.Context) {
	var req SectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	d, ok := h.draft(c)
	if !ok {
		return
	}

	var (
		layout models.Layout
		err    error
	)
	switch req.Op {
	case "add":
		at := len(d.Layout)
		if req.At != nil {
			at = *req.At
		}
		layout, err = theme.Add(d.Layout, models.Section{Name: req.Name, Width: req.Width}, at)
	case "remove":
		layout, err = theme.Remove(d.Layout, req.Name)
	case "width":
		layout, err = theme.SetWidth(d.Layout, req.Name, req.Width)
	}
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, theme.ErrUnknownSection) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	d.Layout = layout
	h.save(c, d)
}

// PublishDraft saves the draft upstream as a theme and, when the draft is
// tied to a tribute, switches the tribute to it.
func (h *ThemeHandler) PublishDraft(c *gin.Context) {
	d, ok := h.draft(c)
	if !ok {
		return
	}
	if err := theme.Validate(d.Layout); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := upstreamCtx(c)
	saved, err := h.Backend.SaveTheme(ctx, d.Theme())
	if err != nil {
		respondError(c, "Could not publish theme", err)
		return
	}
	if err := h.Store.MarkPublished(c.Request.Context(), d.OwnerID, d.ID, saved.ID); err != nil {
		respondError(c, "Could not update draft", err)
		return
	}
	d.ThemeID = saved.ID

	if d.TributeID != 0 {
		t, err := h.Backend.TributeDetails(ctx, d.TributeID)
		if err != nil {
			respondError(c, "Could not fetch tribute", err)
			return
		}
		t.ThemeID = saved.ID
		if _, err := h.Backend.UpdateTribute(ctx, *t); err != nil {
			respondError(c, "Could not apply theme to tribute", err)
			return
		}
	}

	slog.Info("theme published", "draft_id", d.ID, "theme_id", saved.ID, "tribute_id", d.TributeID)
	c.JSON(http.StatusOK, gin.H{"draft": d, "theme": saved})
}

func (h *ThemeHandler) DeleteDraft(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.Store.DeleteDraft(c.Request.Context(), userID, c.Param("draftID")); err != nil {
		respondError(c, "Could not delete draft", err)
		return
	}
	c.Status(http.StatusNoContent)
}
