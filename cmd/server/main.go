package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JunoAX/chorepoints-go/internal/auth"
	"github.com/JunoAX/chorepoints-go/internal/config"
	"github.com/JunoAX/chorepoints-go/internal/engine"
	"github.com/JunoAX/chorepoints-go/internal/handlers"
	"github.com/JunoAX/chorepoints-go/internal/middleware"
	"github.com/JunoAX/chorepoints-go/internal/notify"
	"github.com/JunoAX/chorepoints-go/internal/repository"
	"github.com/JunoAX/chorepoints-go/internal/scheduler"
	"github.com/JunoAX/chorepoints-go/internal/store"
)

var Version = "dev"

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config load failed", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error("store init failed", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	snap, err := st.Load(ctx)
	if err != nil {
		logger.Error("snapshot load failed", "error", err)
		os.Exit(1)
	}
	state := repository.FromSnapshot(snap)

	queue := notify.NewQueue(&notify.LogSink{Logger: logger}, 128, logger)
	queue.Start(ctx)
	defer queue.Close()

	eng := engine.New(state, st, queue, logger, engine.Config{
		OverdueCooldown: cfg.OverdueCooldown,
	})

	sched := scheduler.New(eng, scheduler.Config{
		SweepInterval:  cfg.SweepInterval,
		DailyResetHour: cfg.DailyResetHour,
		Location:       cfg.Location,
	}, logger)
	sched.Start(ctx)
	defer sched.Stop()

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer)
	srv := handlers.New(eng, jwtService)

	r := gin.Default()

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"version": Version,
		})
	})

	// Version endpoint
	r.GET("/api/version", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"version": Version,
			"service": "chorepoints-go",
		})
	})

	r.POST("/api/auth/login", srv.Login)

	api := r.Group("/api", middleware.RequireAuth(jwtService))
	{
		api.GET("/kids", srv.ListKids)
		api.GET("/kids/:id", srv.GetKid)
		api.GET("/chores", srv.ListChores)
		api.GET("/chores/:id", srv.GetChore)
		api.GET("/badges", srv.ListBadges)
		api.GET("/achievements", srv.ListAchievements)
		api.GET("/challenges", srv.ListChallenges)
		api.GET("/rewards", srv.ListRewards)

		api.POST("/chores/:id/claim", srv.ClaimChore)
		api.POST("/rewards/:id/redeem", srv.RedeemReward)

		parent := api.Group("", middleware.RequireParent())
		{
			parent.POST("/chores/:id/approve", srv.ApproveChore)
			parent.POST("/chores/:id/disapprove", srv.DisapproveChore)
			parent.POST("/chores/:id/state", srv.OverrideChoreState)
			parent.POST("/chores/:id/due-date", srv.SetDueDate)
			parent.POST("/chores/:id/skip", srv.SkipDueDate)
			parent.POST("/chores/:id/reschedule", srv.RescheduleChore)
			parent.POST("/chores/:id/remind", srv.RemindChore)

			parent.POST("/rewards/:id/approve", srv.ApproveReward)
			parent.POST("/rewards/:id/disapprove", srv.DisapproveReward)
			parent.POST("/rewards/:id/remind", srv.RemindReward)

			parent.POST("/penalties/:id/apply", srv.ApplyPenalty)
			parent.POST("/bonuses/:id/apply", srv.ApplyBonus)

			parent.PUT("/kids/:id/points", srv.SetKidPoints)
			parent.PUT("/catalog", srv.ApplyCatalog)
			parent.GET("/approvals", srv.ListPendingApprovals)
		}
	}

	httpSrv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: r,
	}

	// Start server in goroutine
	go func() {
		logger.Info("server starting", "port", cfg.Port, "store", cfg.StoreBackend)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}

	logger.Info("server exited")
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		return store.NewPostgresStore(ctx, cfg.DatabaseURL)
	case config.BackendRedis:
		return store.NewRedisStore(ctx, cfg.RedisURL)
	default:
		return store.NewFileStore(cfg.StorePath)
	}
}
