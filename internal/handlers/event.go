package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tribute-portal/internal/backend"
	"tribute-portal/internal/events"
	"tribute-portal/internal/forms"
	"tribute-portal/internal/models"
)

type EventHandler struct {
	Backend *backend.Client
	Now     func() time.Time
}

func NewEventHandler(b *backend.Client, now func() time.Time) *EventHandler {
	return &EventHandler{Backend: b, Now: now}
}

// ListEvents returns a tribute's events filtered by ?filter=upcoming|past|all.
func (h *EventHandler) ListEvents(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	kind, err := events.ParseKind(c.Query("filter"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	evs, err := h.Backend.TributeEvents(upstreamCtx(c), id)
	if err != nil {
		respondError(c, "Could not fetch events", err)
		return
	}

	out, invalid := events.Filter(evs, kind, h.Now())
	if out == nil {
		out = []models.Event{}
	}
	c.JSON(http.StatusOK, gin.H{"filter": kind, "events": out, "invalid": invalid})
}

func (h *EventHandler) CreateEvent(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var form forms.EventForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if err := form.Validate(); err != nil {
		respondError(c, "Event form is invalid", err)
		return
	}

	e := form.Event()
	e.TributeID = id
	created, err := h.Backend.CreateEvent(upstreamCtx(c), id, e)
	if err != nil {
		respondError(c, "Could not create event", err)
		return
	}
	slog.Info("event created", "tribute_id", id, "event_id", created.ID)
	c.JSON(http.StatusCreated, created)
}
