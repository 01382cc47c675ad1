package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tribute-portal/internal/backend"
	"tribute-portal/internal/forms"
	"tribute-portal/internal/models"
	"tribute-portal/internal/tickets"
)

type TicketHandler struct {
	Backend *backend.Client
	Service *tickets.Service
}

func NewTicketHandler(b *backend.Client, svc *tickets.Service) *TicketHandler {
	return &TicketHandler{Backend: b, Service: svc}
}

// ListTickets returns tickets, optionally filtered by ?status, along with
// per-status counts over the unfiltered list.
func (h *TicketHandler) ListTickets(c *gin.Context) {
	status := models.TicketStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown ticket status " + string(status)})
		return
	}

	all, err := h.Backend.Tickets(upstreamCtx(c))
	if err != nil {
		respondError(c, "Could not fetch tickets", err)
		return
	}

	out := make([]models.Ticket, 0, len(all))
	for _, t := range all {
		if status == "" || t.Status == status {
			out = append(out, t)
		}
	}
	c.JSON(http.StatusOK, gin.H{"tickets": out, "counts": tickets.CountByStatus(all)})
}

func (h *TicketHandler) ticket(c *gin.Context) (*models.Ticket, bool) {
	id, ok := paramID(c, "id")
	if !ok {
		return nil, false
	}
	t, err := h.Backend.Ticket(upstreamCtx(c), id)
	if err != nil {
		respondError(c, "Could not fetch ticket", err)
		return nil, false
	}
	return t, true
}

func (h *TicketHandler) GetTicket(c *gin.Context) {
	t, ok := h.ticket(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, t)
}

// RespondTicket posts a staff reply and returns the updated thread.
func (h *TicketHandler) RespondTicket(c *gin.Context) {
	var form forms.ResponseForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if err := form.Validate(); err != nil {
		respondError(c, "Response is invalid", err)
		return
	}
	t, ok := h.ticket(c)
	if !ok {
		return
	}

	if _, err := h.Service.Respond(upstreamCtx(c), t, form.Message); err != nil {
		if errors.Is(err, tickets.ErrTicketClosed) {
			c.JSON(http.StatusConflict, gin.H{"error": "Ticket is closed"})
			return
		}
		respondError(c, "Could not respond to ticket", err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *TicketHandler) CloseTicket(c *gin.Context) {
	t, ok := h.ticket(c)
	if !ok {
		return
	}
	if err := h.Service.Close(upstreamCtx(c), t); err != nil {
		respondError(c, "Could not close ticket", err)
		return
	}
	c.JSON(http.StatusOK, t)
}
