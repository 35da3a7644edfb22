package main

import (
	"log"

	"github.com/fasthttp/router"
	"github.com/joho/godotenv"
	"github.com/valyala/fasthttp"

	"github.com/richfield/wordClockApi/internal/auth"
	"github.com/richfield/wordClockApi/internal/config"
	"github.com/richfield/wordClockApi/internal/db"
	"github.com/richfield/wordClockApi/internal/http/handlers"
	appmw "github.com/richfield/wordClockApi/internal/http/middleware"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	if cfg.TokenSecret == "" {
		log.Fatalf("APP_TOKEN_KEY is required")
	}

	sqlDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	hasher := auth.NewHasher(cfg.BcryptCost)
	issuer := auth.NewIssuer(cfg)

	if err := db.EnsureBootstrapUser(sqlDB, cfg, hasher); err != nil {
		log.Fatalf("failed to ensure bootstrap user: %v", err)
	}

	handlers.InitPrometheusMetrics()

	r := router.New()

	r.GET("/", func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusOK)
		ctx.SetBodyString("API Root")
	})
	r.GET("/healthz", func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusOK)
		ctx.SetBodyString("ok")
	})
	r.GET("/metrics", handlers.MetricsHandler())

	r.GET("/api/users", handlers.ListUsers(sqlDB))
	r.GET("/api/user/{id}", handlers.GetUser(sqlDB))
	r.POST("/api/register", handlers.Register(sqlDB, hasher))
	r.POST("/api/login", handlers.Login(sqlDB, hasher, issuer))

	tokenAuth := appmw.TokenAuth(issuer)
	r.GET("/api/settings", tokenAuth(handlers.GetSettings(sqlDB)))
	r.GET("/api/me", tokenAuth(handlers.Me(sqlDB)))
	r.POST("/api/settings", tokenAuth(handlers.UpdateSettings(sqlDB)))

	// Global middleware chain: request logger, then metrics, then CORS, then router
	handler := handlers.RequestLogger(handlers.RequestMetrics(appmw.CORS(cfg.AllowedOrigins)(r.Handler)))

	log.Printf("wordClockApi listening on %s", cfg.ListenAddr)
	if err := fasthttp.ListenAndServe(cfg.ListenAddr, handler); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
