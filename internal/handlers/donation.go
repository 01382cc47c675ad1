package handlers

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"tribute-portal/internal/backend"
	"tribute-portal/internal/finance"
	"tribute-portal/internal/forms"
	"tribute-portal/internal/models"
	ws "tribute-portal/internal/websocket"
)

type DonationHandler struct {
	Backend *backend.Client
	Hub     *ws.Hub
}

func NewDonationHandler(b *backend.Client, hub *ws.Hub) *DonationHandler {
	return &DonationHandler{Backend: b, Hub: hub}
}

type CreateDonationRequest struct {
	forms.DonationForm
	CallbackURL string `json:"callback_url"`
}

func (h *DonationHandler) CreateDonation(c *gin.Context) {
	tributeID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	amount, err := req.Validate()
	if err != nil {
		respondError(c, "Donation form is invalid", err)
		return
	}

	ctx := upstreamCtx(c)
	t, err := h.Backend.TributeDetails(ctx, tributeID)
	if err != nil {
		respondError(c, "Could not find tribute", err)
		return
	}
	if t.IsDeleted() {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tribute not found"})
		return
	}
	if t.DonationOptions != nil && !t.DonationOptions.Enabled {
		c.JSON(http.StatusConflict, gin.H{"error": "Donations are disabled for this tribute"})
		return
	}

	payment, err := h.Backend.InitializeGuestPayment(ctx, backend.GuestPaymentRequest{
		TributeID:   tributeID,
		Amount:      amount.StringFixed(2),
		DonorName:   req.DonorName,
		DonorEmail:  req.DonorEmail,
		Message:     req.Message,
		CallbackURL: req.CallbackURL,
	})
	if err != nil {
		respondError(c, "Payment gateway error", err)
		return
	}

	slog.Info("guest payment initialised", "tribute_id", tributeID, "reference", payment.Reference)
	c.JSON(http.StatusOK, gin.H{
		"message":      "Payment link created.",
		"redirect_url": payment.AuthorizationURL,
		"reference":    payment.Reference,
	})
}

// DonationSummary is the tribute owner's donation overview.
type DonationSummary struct {
	finance.Display
	Goal     string `json:"goal,omitempty"`
	Progress string `json:"progress_percent,omitempty"`
}

func (h *DonationHandler) GetDonationSummary(c *gin.Context) {
	tributeID, ok := paramID(c, "id")
	if !ok {
		return
	}
	ctx := upstreamCtx(c)
	t, err := h.Backend.TributeDetails(ctx, tributeID)
	if err != nil {
		respondError(c, "Could not find tribute", err)
		return
	}
	donations, err := h.Backend.TributeDonations(ctx, tributeID)
	if err != nil {
		respondError(c, "Could not fetch donations", err)
		return
	}

	s := finance.Summarize(donations, nil)
	out := DonationSummary{Display: s.Display()}
	if o := t.DonationOptions; o != nil && o.Goal.IsPositive() {
		out.Goal = o.Goal.StringFixed(2)
		out.Progress = s.TotalDonations.Mul(decimal.NewFromInt(100)).Div(o.Goal).StringFixed(1)
	}
	c.JSON(http.StatusOK, out)
}

// HandleDonationNotification is called by the upstream once a guest payment
// settles. It relays the donation to everyone watching the tribute.
func (h *DonationHandler) HandleDonationNotification(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader("X-Webhook-Secret")
		if secret == "" || subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
			slog.Warn("rejected donation notification", "remote", c.ClientIP())
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid webhook secret"})
			return
		}

		var d models.Donation
		if err := c.ShouldBindJSON(&d); err != nil {
			slog.Warn("failed to bind donation notification", "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification format"})
			return
		}
		if d.TributeID <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Notification has no tribute_id"})
			return
		}
		if !finance.Settled(d.Status) {
			slog.Info("received unsettled donation", "tribute_id", d.TributeID, "status", d.Status)
			c.JSON(http.StatusOK, gin.H{"status": "ok (not settled)"})
			return
		}

		// Donor email stays private.
		d.DonorEmail = ""
		h.Hub.Publish(ws.Topic("tribute", d.TributeID), ws.EventDonationReceived, d)

		slog.Info("donation relayed", "tribute_id", d.TributeID, "reference", d.Reference)
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
