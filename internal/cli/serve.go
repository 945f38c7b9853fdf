package cli

import (
	"context"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/luvbee/event-spider/internal/config"
	cronrunner "github.com/luvbee/event-spider/internal/cron"
	"github.com/luvbee/event-spider/internal/db"
	"github.com/luvbee/event-spider/internal/fetch"
	"github.com/luvbee/event-spider/internal/geo"
	"github.com/luvbee/event-spider/internal/handler"
	"github.com/luvbee/event-spider/internal/logger"
	"github.com/luvbee/event-spider/internal/source"
	"github.com/luvbee/event-spider/internal/spider"
	"github.com/luvbee/event-spider/internal/store"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the discovery HTTP service",
		RunE:  runServe,
	}
}

// buildSpider assembles the pipeline shared by serve and discover.
func buildSpider(cfg config.Config, log *zap.Logger, dbConn *db.DB) *spider.Spider {
	client := fetch.New(cfg.Scraper.Timeout)
	client.UserAgent = cfg.Scraper.UserAgent
	return &spider.Spider{
		Extractors: []source.Extractor{
			&source.Sympla{Client: client},
			&source.Eventbrite{Client: client},
			&source.Ingresse{Client: client},
			&source.Shotgun{Client: client},
		},
		Store:      store.NewWriter(dbConn.Gorm, geo.DefaultTable()),
		Logger:     log,
		WindowDays: cfg.Discovery.WindowDays,
		RunTimeout: cfg.Discovery.RunTimeout,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig, flagEnvOnly)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer log.Sync()

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		log.Error("db open failed", zap.Error(err))
		return err
	}
	defer db.Close(dbConn)

	if err := db.AutoMigrate(dbConn); err != nil {
		log.Error("auto-migrate failed", zap.Error(err))
		return err
	}

	sp := buildSpider(cfg, log, dbConn)

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(handler.CORSMiddleware())

	discoverHandler := &handler.DiscoverHandler{Spider: sp, Logger: log}
	discoverHandler.Register(engine)
	healthHandler := &handler.HealthHandler{DB: dbConn.Gorm}
	healthHandler.Register(engine)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := cronrunner.New(log, ctx)
	if cfg.Discovery.Cron.Enabled {
		for _, entry := range cfg.Discovery.Cron.Cities {
			city, err := cronrunner.ParseCity(entry)
			if err != nil {
				log.Warn("skipping scheduled city", zap.String("entry", entry), zap.Error(err))
				continue
			}
			_, err = runner.Add(cfg.Discovery.Cron.Spec, func(ctx context.Context) {
				if _, err := sp.Run(ctx, city.Name, city.State); err != nil {
					log.Warn("scheduled sweep failed",
						zap.String("city", city.Name),
						zap.String("state", city.State),
						zap.Error(err),
					)
				}
			})
			if err != nil {
				log.Warn("cron register failed", zap.String("entry", entry), zap.Error(err))
			}
		}
		runner.Start()
		defer runner.Stop()
	}

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown requested")
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
