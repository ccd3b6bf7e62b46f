package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"appointment-sync/core/cache"
	"appointment-sync/core/config"
	"appointment-sync/core/database"
	"appointment-sync/core/logger"
	"appointment-sync/core/middleware"
	"appointment-sync/core/queue"
	"appointment-sync/core/storage"
	"appointment-sync/modules/appointment"
	appointmentService "appointment-sync/modules/appointment/service"
	"appointment-sync/modules/appointment/store"
	"appointment-sync/modules/booking"
	"appointment-sync/modules/intent"
)

// Run wires the whole application together and blocks until the process
// receives an interrupt.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	schedule, calendar, api, err := buildAccessors(cfg)
	if err != nil {
		return fmt.Errorf("build stores: %w", err)
	}
	syncSvc := appointmentService.NewSyncService(schedule, calendar, api)

	appCache := cache.NewNoop()
	var queueClient *queue.Client
	var worker *queue.Worker

	var uploader storage.Uploader
	if cfg.S3.Bucket != "" {
		uploader = storage.NewS3Uploader(cfg.AppName, cfg.S3)
	}

	if cfg.Redis.Addr != "" {
		appCache = cache.NewCache(cfg.Redis)
		// The worker always runs the periodic conflict scan; export upload
		// tasks are only enqueued (and handled) when a backup bucket exists,
		// so nothing ever piles up in Redis unprocessed.
		worker = queue.NewWorker(cfg.Redis, exportFunc(syncSvc), uploader, scanFunc(syncSvc))
		if uploader != nil {
			queueClient = queue.NewClient(cfg.Redis)
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger())

	mw := middleware.NewMiddleware(cfg.Auth.JWTSecret)
	appointment.Init(e, syncSvc, uploader, mw)
	bookingSvc := booking.Init(e, syncSvc, appCache, queueClient)
	intent.Init(e, cfg.LLM, bookingSvc, syncSvc)

	if worker != nil {
		go func() {
			if err := worker.Start(); err != nil {
				logger.Error("Server:Worker:Start:Error:", err)
			}
		}()
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	go func() {
		logger.Info("Server:Start", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("Server:Start:Error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Server:Shutdown:Begin")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if worker != nil {
		worker.Shutdown()
	}
	if queueClient != nil {
		_ = queueClient.Close()
	}
	return e.Shutdown(ctx)
}

// buildAccessors constructs the three record stores. Calendar and api
// stores are always file backed; the schedule store follows the
// configured driver.
func buildAccessors(cfg *config.Config) (schedule, calendar, api store.Accessor, err error) {
	calendar = store.NewFileAccessor(filepath.Join(cfg.Stores.DataDir, cfg.Stores.CalendarFile))
	api = store.NewFileAccessor(filepath.Join(cfg.Stores.DataDir, cfg.Stores.APIFile))

	if cfg.Stores.ScheduleDriver == "postgres" {
		db, dbErr := database.InitDB(cfg.Database)
		if dbErr != nil {
			return nil, nil, nil, dbErr
		}
		pg := store.NewPostgresScheduleAccessor(db)
		if err := pg.EnsureSchema(context.Background()); err != nil {
			return nil, nil, nil, err
		}
		schedule = pg
		return schedule, calendar, api, nil
	}

	schedule = store.NewFileAccessor(filepath.Join(cfg.Stores.DataDir, cfg.Stores.ScheduleFile))
	return schedule, calendar, api, nil
}

func exportFunc(svc *appointmentService.SyncService) queue.ExportFunc {
	return func(ctx context.Context) ([]byte, time.Time, error) {
		snapshot := svc.ExportAll(ctx)
		payload, err := json.Marshal(snapshot)
		if err != nil {
			return nil, time.Time{}, err
		}
		return payload, time.Now(), nil
	}
}

func scanFunc(svc *appointmentService.SyncService) queue.ScanFunc {
	return func(ctx context.Context) (int, error) {
		report := svc.SyncAll(ctx)
		return len(report.Conflicts), nil
	}
}

func requestLogger() echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			logger.Info("Request", "method", v.Method, "uri", v.URI, "status", v.Status)
			return nil
		},
	})
}
