package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"tribute-portal/internal/backend"
	"tribute-portal/internal/middleware"
	"tribute-portal/internal/models"
	"tribute-portal/internal/store"
	"tribute-portal/internal/tickets"
	ws "tribute-portal/internal/websocket"
)

type Deps struct {
	Backend       *backend.Client
	Store         *store.Store
	Hub           *ws.Hub
	JWTSecret     string
	WebhookSecret string
	FeePercent    decimal.Decimal
	CORSOrigins   []string
	ProfileTTL    time.Duration
	Now           func() time.Time
}

func NewRouter(d Deps) *gin.Engine {
	if d.Now == nil {
		d.Now = time.Now
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.Metrics())
	if len(d.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     d.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/ping", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := d.Store.Ping(ctx); err != nil {
			slog.Error("database ping failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"message": "database unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	financeHandler := NewFinanceHandler(d.Backend, d.FeePercent)
	userHandler := NewUserHandler(d.Backend)
	tributeHandler := NewTributeHandler(d.Backend, d.Now)
	eventHandler := NewEventHandler(d.Backend, d.Now)
	donationHandler := NewDonationHandler(d.Backend, d.Hub)
	themeHandler := NewThemeHandler(d.Backend, d.Store)
	ticketHandler := NewTicketHandler(d.Backend, tickets.NewService(d.Backend, d.Hub))
	profileHandler := NewProfileHandler(d.Backend, d.Store, d.ProfileTTL)
	wsHandler := NewWebSocketHandler(d.Backend, d.Hub)

	api := r.Group("/api")
	{
		// Called by the upstream backend, authenticated by a shared secret.
		api.POST("/hooks/donations", donationHandler.HandleDonationNotification(d.WebhookSecret))
		// Guests donate without an account.
		api.POST("/tributes/:id/donate", donationHandler.CreateDonation)

		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(d.JWTSecret))
		{
			protected.GET("/me", profileHandler.GetMyProfile)
			protected.PUT("/me", profileHandler.RefreshMyProfile)

			protected.POST("/tributes/validate", tributeHandler.ValidateStep)
			protected.POST("/tributes", tributeHandler.CreateTribute)
			protected.GET("/tributes/:id", tributeHandler.GetTribute)
			protected.PUT("/tributes/:id", tributeHandler.UpdateTribute)
			protected.DELETE("/tributes/:id", tributeHandler.DeleteTribute)

			protected.GET("/tributes/:id/events", eventHandler.ListEvents)
			protected.POST("/tributes/:id/events", eventHandler.CreateEvent)

			protected.GET("/tributes/:id/donations/summary", donationHandler.GetDonationSummary)

			protected.GET("/themes", themeHandler.ListThemes)
			protected.GET("/themes/presets", themeHandler.ListPresets)
			protected.POST("/themes/drafts", themeHandler.CreateDraft)
			protected.GET("/themes/drafts", themeHandler.ListDrafts)
			protected.GET("/themes/drafts/:draftID", themeHandler.GetDraft)
			protected.PUT("/themes/drafts/:draftID", themeHandler.UpdateDraft)
			protected.POST("/themes/drafts/:draftID/move", themeHandler.MoveSection)
			protected.POST("/themes/drafts/:draftID/sections", themeHandler.EditSection)
			protected.POST("/themes/drafts/:draftID/publish", themeHandler.PublishDraft)
			protected.DELETE("/themes/drafts/:draftID", themeHandler.DeleteDraft)

			protected.GET("/tickets", ticketHandler.ListTickets)
			protected.GET("/tickets/:id", ticketHandler.GetTicket)
			protected.POST("/tickets/:id/respond", ticketHandler.RespondTicket)
			protected.POST("/tickets/:id/close", ticketHandler.CloseTicket)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(d.JWTSecret), middleware.RequireRole(models.RoleAdmin))
		{
			admin.GET("/finance/summary", financeHandler.GetSummary)
			admin.GET("/finance/tributes", financeHandler.GetTributeTotals)
			admin.GET("/withdrawals", financeHandler.ListWithdrawals)
			admin.POST("/withdrawals/:id/quote", financeHandler.QuoteWithdrawal)
			admin.POST("/withdrawals/:id/approve", financeHandler.ApproveWithdrawal)
			admin.POST("/withdrawals/:id/reject", financeHandler.RejectWithdrawal)

			admin.GET("/users", userHandler.ListUsers)
			admin.PATCH("/users/:id/status", userHandler.UpdateUserStatus)
		}
	}

	r.GET("/ws/:topic", middleware.AuthMiddleware(d.JWTSecret, middleware.AllowQueryToken()), wsHandler.ServeWs)

	return r
}
