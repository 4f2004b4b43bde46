package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/agendaja-guias/internal/audit"
	"github.com/BruksfildServices01/agendaja-guias/internal/cache"
	"github.com/BruksfildServices01/agendaja-guias/internal/config"
	domain "github.com/BruksfildServices01/agendaja-guias/internal/domain/guia"
	"github.com/BruksfildServices01/agendaja-guias/internal/followup"
	"github.com/BruksfildServices01/agendaja-guias/internal/handlers"
	"github.com/BruksfildServices01/agendaja-guias/internal/middleware"
	ucGuia "github.com/BruksfildServices01/agendaja-guias/internal/usecase/guia"
)

// Deps são os singletons de infraestrutura montados pelo comando serve.
type Deps struct {
	Config      *config.Config
	Repo        domain.Repository
	Audit       *audit.Dispatcher
	AuditReader audit.Reader
	Cache       cache.Store
	FollowUp    followup.Recorder
	Log         zerolog.Logger
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	cfg := d.Config

	r.Use(
		middleware.RequestID(),
		middleware.Logger(d.Log),
		middleware.Recovery(d.Log),
		middleware.CORSMiddleware(cfg.AllowedOrigins()),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	alertDays := cfg.ExpirationAlertDays

	// ======================================================
	// 🧠 USE CASES — GUIAS
	// ======================================================
	issueGuidesUC := ucGuia.NewIssueGuides(
		d.Repo,
		d.Audit,
	)

	listGuidesUC := ucGuia.NewListGuides(
		d.Repo,
		d.Cache,
		cfg.CacheTTL,
		alertDays,
		d.Log,
	)

	getGuideUC := ucGuia.NewGetGuide(
		d.Repo,
		d.Cache,
		cfg.CacheTTL,
		alertDays,
		d.Log,
	)

	listOrderGuidesUC := ucGuia.NewListOrderGuides(
		d.Repo,
		d.Cache,
		cfg.CacheTTL,
		alertDays,
		d.Log,
	)

	updateGuideStatusUC := ucGuia.NewUpdateGuideStatus(
		d.Repo,
		d.Audit,
	)

	cancelOrderUC := ucGuia.NewCancelOrder(
		d.Repo,
		d.Audit,
		d.FollowUp,
		d.Log,
	)

	reverseOrderUC := ucGuia.NewReverseOrder(
		d.Repo,
		d.Audit,
		d.FollowUp,
		d.Log,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	meHandler := handlers.NewMeHandler()

	guiaHandler := handlers.NewGuiaHandler(
		issueGuidesUC,
		listGuidesUC,
		getGuideUC,
		listOrderGuidesUC,
		updateGuideStatusUC,
		cancelOrderUC,
		reverseOrderUC,
		d.Cache,
		d.Log,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditReader)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg))
	{
		onlyUnidade := middleware.RequireActor(domain.ActorUnidade)

		api.GET("/me", meHandler.GetMe)
		api.GET("/me/audit-logs", onlyUnidade, auditLogsHandler.List)

		// ------------------------------
		// VENDAS
		// ------------------------------
		api.POST("/vendas", onlyUnidade, guiaHandler.IssueSale)

		// ------------------------------
		// GUIAS
		// ------------------------------
		api.GET("/guias", guiaHandler.List)
		api.GET("/guias/transicoes", guiaHandler.Transitions)
		api.GET("/guias/:id", guiaHandler.Get)
		api.PATCH("/guias/:id/status", guiaHandler.UpdateStatus)

		// ------------------------------
		// PEDIDO (CASCATA)
		// ------------------------------
		api.GET("/guias/:id/pedido", guiaHandler.Order)
		api.POST("/guias/:id/pedido/cancelar", guiaHandler.CancelOrder)
		api.POST("/guias/:id/pedido/estornar", onlyUnidade, guiaHandler.ReverseOrder)
	}
}
