package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"tribute-portal/internal/backend"
	"tribute-portal/internal/finance"
	"tribute-portal/internal/models"
)

type FinanceHandler struct {
	Backend    *backend.Client
	FeePercent decimal.Decimal
}

func NewFinanceHandler(b *backend.Client, feePercent decimal.Decimal) *FinanceHandler {
	return &FinanceHandler{Backend: b, FeePercent: feePercent}
}

func (h *FinanceHandler) GetSummary(c *gin.Context) {
	var (
		donations []models.Donation
		payments  []models.Payment
	)
	g, ctx := errgroup.WithContext(upstreamCtx(c))
	g.Go(func() error {
		var err error
		donations, err = h.Backend.AdminDonations(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		payments, err = h.Backend.AdminPayments(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		respondError(c, "Could not fetch financial records", err)
		return
	}

	c.JSON(http.StatusOK, finance.Summarize(donations, payments).Display())
}

func (h *FinanceHandler) GetTributeTotals(c *gin.Context) {
	donations, err := h.Backend.AdminDonations(upstreamCtx(c))
	if err != nil {
		respondError(c, "Could not fetch donations", err)
		return
	}

	totals := finance.ByTribute(donations)
	out := make([]gin.H, 0, len(totals))
	for _, t := range totals {
		out = append(out, gin.H{"tribute_id": t.TributeID, "total": t.Total.StringFixed(2), "count": t.Count})
	}
	c.JSON(http.StatusOK, out)
}

func (h *FinanceHandler) ListWithdrawals(c *gin.Context) {
	list, err := h.Backend.Withdrawals(upstreamCtx(c))
	if err != nil {
		respondError(c, "Could not fetch withdrawals", err)
		return
	}
	if status := strings.ToLower(c.Query("status")); status != "" {
		filtered := list[:0]
		for _, w := range list {
			if strings.EqualFold(w.Status, status) {
				filtered = append(filtered, w)
			}
		}
		list = filtered
	}
	if list == nil {
		list = []models.WithdrawalRequest{}
	}
	c.JSON(http.StatusOK, list)
}

// QuoteRequest lets the admin override the configured fee for one request.
type QuoteRequest struct {
	FeePercent *decimal.Decimal `json:"fee_percent"`
	Note       string           `json:"note"`
}

func (h *FinanceHandler) quote(c *gin.Context) (*models.WithdrawalRequest, finance.Quote, string, bool) {
	id, ok := paramID(c, "id")
	if !ok {
		return nil, finance.Quote{}, "", false
	}
	var req QuoteRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return nil, finance.Quote{}, "", false
		}
	}
	fee := h.FeePercent
	if req.FeePercent != nil {
		fee = *req.FeePercent
	}

	w, err := h.Backend.Withdrawal(upstreamCtx(c), id)
	if err != nil {
		respondError(c, "Could not fetch withdrawal", err)
		return nil, finance.Quote{}, "", false
	}
	q, err := finance.QuoteWithdrawal(w.Amount, fee)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, finance.Quote{}, "", false
	}
	return w, q, req.Note, true
}

func (h *FinanceHandler) QuoteWithdrawal(c *gin.Context) {
	w, q, _, ok := h.quote(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"withdrawal_id": w.ID, "quote": q.Display()})
}

func (h *FinanceHandler) ApproveWithdrawal(c *gin.Context) {
	w, q, note, ok := h.quote(c)
	if !ok {
		return
	}
	if w.Status != models.WithdrawalPending {
		c.JSON(http.StatusConflict, gin.H{"error": "Withdrawal is already " + w.Status})
		return
	}

	updated, err := h.Backend.DecideWithdrawal(upstreamCtx(c), w.ID, backend.WithdrawalDecision{
		Status: models.WithdrawalApproved,
		Fee:    &q.Fee,
		Net:    &q.Net,
		Note:   note,
	})
	if err != nil {
		respondError(c, "Could not approve withdrawal", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"withdrawal": updated, "quote": q.Display()})
}

func (h *FinanceHandler) RejectWithdrawal(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Note string `json:"note" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	ctx := upstreamCtx(c)
	w, err := h.Backend.Withdrawal(ctx, id)
	if err != nil {
		respondError(c, "Could not fetch withdrawal", err)
		return
	}
	if w.Status != models.WithdrawalPending {
		c.JSON(http.StatusConflict, gin.H{"error": "Withdrawal is already " + w.Status})
		return
	}

	updated, err := h.Backend.DecideWithdrawal(ctx, id, backend.WithdrawalDecision{
		Status: models.WithdrawalRejected,
		Note:   req.Note,
	})
	if err != nil {
		respondError(c, "Could not reject withdrawal", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
