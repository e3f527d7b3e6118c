package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/taskline/backend/api/handler"
	"github.com/taskline/backend/bot"
	"github.com/taskline/backend/domain"
	"github.com/taskline/backend/internal/config"
	"github.com/taskline/backend/internal/export"
	"github.com/taskline/backend/internal/infrastructure/monitor"
	"github.com/taskline/backend/internal/infrastructure/outbox"
	pgInfra "github.com/taskline/backend/internal/infrastructure/postgres"
	redisInfra "github.com/taskline/backend/internal/infrastructure/redis"
	tgInfra "github.com/taskline/backend/internal/infrastructure/telegram"
	"github.com/taskline/backend/internal/middleware"
	"github.com/taskline/backend/internal/router"
	"github.com/taskline/backend/internal/services"
	"github.com/taskline/backend/internal/services/lifecycle"
	"github.com/taskline/backend/pkg/httpcontext"
	"github.com/taskline/backend/pkg/logger"
	"github.com/taskline/backend/repository/postgres"
	redisRepo "github.com/taskline/backend/repository/redis"
	rosterUC "github.com/taskline/backend/usecase/roster"
	summaryUC "github.com/taskline/backend/usecase/summary"
	taskUC "github.com/taskline/backend/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	displayLoc, err := cfg.Location()
	if err != nil {
		zapLogger.Fatal("invalid display timezone", zap.String("timezone", cfg.Report.Timezone), zap.Error(err))
	}

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	outboxStore, err := outbox.Open(cfg.Outbox.Path, "outbox")
	if err != nil {
		zapLogger.Fatal("failed to open outbox store", zap.Error(err))
	}
	manager.Register("outbox", func(ctx context.Context) error {
		return outboxStore.Close()
	})

	mon := monitor.New(pool, redisClient, outboxStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	botAPI, err := tgInfra.NewBot(cfg.Telegram, zapLogger)
	if err != nil {
		zapLogger.Fatal("telegram authorization failed", zap.Error(err))
	}

	userRepo := postgres.NewUserRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	dialogRepo := redisRepo.NewDialogRepository(redisClient, cfg.Telegram.DialogTTL)

	notifier := bot.NewNotifier(botAPI)

	notifyProcessor := services.NewNotifyProcessor(
		outboxStore,
		mon,
		notifier,
		zapLogger,
		services.ProcessorConfig{
			Interval:   cfg.Outbox.SyncInterval,
			BatchSize:  50,
			MaxRetries: cfg.Outbox.MaxRetry,
		},
	)
	notifyProcessor.Start()
	manager.Register("notify_processor", func(ctx context.Context) error {
		notifyProcessor.Stop(ctx)
		return nil
	})

	notifyQueue := services.NewNotifyQueue(notifyProcessor)

	roster := rosterUC.New(userRepo, cfg.Telegram.AdminID, zapLogger)
	tasks := taskUC.New(taskRepo, userRepo, notifier, notifyQueue, displayLoc, zapLogger)
	summary := summaryUC.New(
		taskRepo,
		reportRepo,
		userRepo,
		export.NewChartRenderer(cfg.Report.ChartTitle),
		export.NewSpreadsheetWriter(),
		displayLoc,
		zapLogger,
	)

	handler := bot.NewHandler(botAPI, roster, tasks, summary, dialogRepo, zapLogger)
	adminOnly := middleware.AdminOnly(roster, botAPI, zapLogger)

	botRouter := bot.NewRouter()
	botRouter.Command("start", handler.Start)
	botRouter.Command("menu", handler.Menu)
	botRouter.Command("assign", adminOnly(handler.AssignStart))
	botRouter.Command("done", handler.DoneStart)
	botRouter.Command("mytasks", handler.MyTasks)
	botRouter.Command("report", adminOnly(handler.Report))
	botRouter.Command("users", adminOnly(handler.Users))
	botRouter.State(domain.DialogAwaitingAssignee, handler.AssignAssignee)
	botRouter.State(domain.DialogAwaitingTaskText, handler.AssignTaskText)
	botRouter.State(domain.DialogAwaitingDoneID, handler.DoneTaskID)

	poller := bot.NewPoller(
		botAPI,
		botRouter,
		dialogRepo,
		cfg.Context.RequestTimeout,
		cfg.Telegram.PollTimeout,
		zapLogger,
	)

	go func() {
		if err := poller.Run(appCtx); err != nil {
			zapLogger.Error("poller stopped with error", zap.Error(err))
		}
	}()

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)
	handlers := router.Handlers{
		Health: apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}
	r := router.New(handlers)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("ops server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("ops server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
