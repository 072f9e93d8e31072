package router

import (
	"time"

	"github.com/Kountade/MSG-SARL-sub002/internal/config"
	"github.com/Kountade/MSG-SARL-sub002/internal/handler"
	"github.com/Kountade/MSG-SARL-sub002/internal/infra"
	"github.com/Kountade/MSG-SARL-sub002/internal/middleware"
	"github.com/Kountade/MSG-SARL-sub002/internal/repository"
	"github.com/Kountade/MSG-SARL-sub002/internal/service"
	"github.com/Kountade/MSG-SARL-sub002/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Deps carries the composition result back to main so the worker pool can be
// started with the same service instances the HTTP layer uses.
type Deps struct {
	Engine   *gin.Engine
	Factures service.FactureService
	Mailer   *infra.Mailer
}

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *Deps {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(corsMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	mailer := infra.NewMailer(cfg)
	logos := infra.NewLogoFetcher(cfg.LogoURL)

	// ── Repositories ─────────────────────────────────────────────────────────
	utilisateurRepo := repository.NewUtilisateurRepository(db)
	clientRepo := repository.NewClientRepository(db)
	produitRepo := repository.NewProduitRepository(db)
	entrepotRepo := repository.NewEntrepotRepository(db)
	venteRepo := repository.NewVenteRepository(db)
	journalRepo := repository.NewJournalRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(utilisateurRepo, cfg)
	journalSvc := service.NewJournalService(journalRepo)
	stockSvc := service.NewStockService(produitRepo, entrepotRepo, journalSvc)
	factureSvc := service.NewFactureService(venteRepo, logos, cfg)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	venteSvc := service.NewVenteService(venteRepo, produitRepo, entrepotRepo, journalSvc, dispatcher)
	clientSvc := service.NewClientService(clientRepo, venteRepo, journalSvc)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	ventesH := handler.NewVentesHandler(venteSvc, factureSvc)
	clientsH := handler.NewClientsHandler(clientSvc)
	stockH := handler.NewStockHandler(stockSvc)
	journalH := handler.NewJournalHandler(journalSvc)
	utilisateursH := handler.NewUtilisateursHandler(authSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	tous := middleware.RequireRole("vendeur", "gestionnaire", "administrateur")
	gestion := middleware.RequireRole("gestionnaire", "administrateur")
	admin := middleware.RequireRole("administrateur")

	v1 := r.Group("/v1", jwtMW)
	{
		ventes := v1.Group("/ventes")
		{
			ventes.POST("", tous, ventesH.CreerVente)
			ventes.GET("", tous, ventesH.ListerVentes)
			ventes.GET("/:id", tous, ventesH.GetVente)
			ventes.PATCH("/:id", tous, ventesH.ModifierVente)
			ventes.DELETE("/:id", tous, ventesH.SupprimerVente)
			ventes.POST("/:id/confirmer", tous, ventesH.ConfirmerVente)
			ventes.POST("/:id/enregistrer_paiement", tous, ventesH.EnregistrerPaiement)
			ventes.GET("/:id/facture", tous, ventesH.TelechargerFacture)
		}

		v1.GET("/clients", tous, clientsH.ListerClients)
		v1.POST("/clients", tous, clientsH.CreerClient)
		v1.GET("/clients/:id", tous, clientsH.GetClient)
		v1.GET("/historique-client", tous, clientsH.HistoriqueClient)

		v1.GET("/produits", tous, stockH.ListerProduits)
		v1.POST("/produits", gestion, stockH.CreerProduit)
		v1.GET("/entrepots", tous, stockH.ListerEntrepots)
		v1.POST("/entrepots", gestion, stockH.CreerEntrepot)
		v1.GET("/stock-disponible", tous, stockH.StockDisponible)

		v1.GET("/journal", gestion, journalH.ListerJournal)

		utilisateurs := v1.Group("/utilisateurs", admin)
		{
			utilisateurs.POST("", utilisateursH.CreerUtilisateur)
			utilisateurs.GET("", utilisateursH.ListerUtilisateurs)
			utilisateurs.PUT("/:id", utilisateursH.ModifierUtilisateur)
			utilisateurs.DELETE("/:id", utilisateursH.DesactiverUtilisateur)
			utilisateurs.POST("/:id/reactiver", utilisateursH.ReactiverUtilisateur)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return &Deps{Engine: r, Factures: factureSvc, Mailer: mailer}
}

func corsMiddleware() gin.HandlerFunc {
	c := cors.DefaultConfig()
	c.AllowAllOrigins = true
	c.AllowHeaders = append(c.AllowHeaders, "Authorization", "X-Request-ID")
	c.ExposeHeaders = append(c.ExposeHeaders, "X-Request-ID", "Content-Disposition")
	return cors.New(c)
}
