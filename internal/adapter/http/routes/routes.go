package routes

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "insurance_quotes/docs"
	"insurance_quotes/internal/adapter/http/handlers"
	"insurance_quotes/internal/config"
	"insurance_quotes/internal/platform/logger"
	"insurance_quotes/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const shutdownTimeout = 90 * time.Second

// Run will start the server and block until SIGINT/SIGTERM. On shutdown it
// stops accepting requests, then waits for running fan-outs to settle.
func Run() {
	cfg, cfgErr := config.Load()

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		panic(err)
	}
	if cfgErr != nil {
		log.Fatal("invalid configuration", "error", cfgErr)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := NewApplication(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to wire the application", "error", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Warn("failed to release resources", "error", err)
		}
	}()

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.HTTPPort),
		Handler:           NewRouter(app.UseCase, app.Metrics.Handler(), log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to startup the application", "error", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown", "error", err)
	}
	if err := app.UseCase.Wait(shutdownCtx); err != nil {
		log.Warn("fan-outs still running at shutdown", "error", err)
	}
}

// NewRouter mounts swagger, /metrics and the /v1 API.
func NewRouter(uc usecase.IAggregationUseCase, metricsHandler http.Handler, log *logger.Logger) *gin.Engine {
	router := gin.New()
	setMiddlewares(router, log)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(metricsHandler))
	}

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addAggregationRoutes(v1, handlers.NewAggregationHandler(uc))
	addProviderRoutes(v1, handlers.NewProviderHandler(uc))
	return router
}

func setMiddlewares(router *gin.Engine, log *logger.Logger) {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error("recovered from panic", "panic", recovered, "path", c.Request.URL.Path)
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
}
