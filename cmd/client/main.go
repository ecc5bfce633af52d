package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"LegacyGuardians/internal/api"
	"LegacyGuardians/internal/app"
	"LegacyGuardians/internal/config"
	"LegacyGuardians/internal/console"
	"LegacyGuardians/internal/i18n"
	"LegacyGuardians/internal/navigate"
	"LegacyGuardians/internal/notifier"
	"LegacyGuardians/internal/recorder"
	"LegacyGuardians/internal/scheduler"
)

func main() {
	_ = godotenv.Load()

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config validation: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	logger.Info("Legacy Guardians client starting",
		zap.String("backend", cfg.Backend.BaseURL), zap.String("frontend", cfg.Frontend.Mode))

	cat, err := i18n.Load()
	if err != nil {
		logger.Fatal("load catalogs", zap.Error(err))
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.SQLitePath), 0o755); err != nil {
			logger.Warn("create database directory", zap.Error(err))
		}
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, logger.Named("recorder"))
		if err != nil {
			logger.Warn("init sqlite recorder failed, using noop", zap.Error(err))
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(rec, cfg.Retention(), logger.Named("scheduler"))
	if err := sched.RegisterAll(cfg.Trace.PruneCron); err != nil {
		logger.Fatal("register cron tasks", zap.Error(err))
	}
	sched.Start()
	defer sched.Stop()

	backend := api.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout)
	router := navigate.NewRouter(cfg.Backend.BaseURL)
	opts := app.Options{
		Backend:     backend,
		Navigator:   router,
		Recorder:    rec,
		Locale:      cfg.Locale(),
		Level3Route: cfg.Navigation.Level3Route,
		Log:         logger,
	}

	switch cfg.Frontend.Mode {
	case config.FrontendTelegram:
		runTelegram(ctx, cfg, cat, opts, router, logger)
	default:
		runConsole(ctx, cfg, cat, opts, logger)
	}
	logger.Info("Legacy Guardians client stopped")
}

func runConsole(ctx context.Context, cfg *config.Config, cat *i18n.Catalog, opts app.Options, logger *zap.Logger) {
	alerts := &console.Alerts{}
	opts.Alerter = alerts
	g, err := app.New(cat, opts)
	if err != nil {
		logger.Fatal("build game", zap.Error(err))
	}

	m := console.New(ctx, g, alerts, cfg.Backend.BaseURL)
	final, err := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run()
	if err != nil && ctx.Err() == nil {
		logger.Error("console stopped", zap.Error(err))
		return
	}
	if fm, ok := final.(*console.Model); ok && fm.Target() != "" {
		fmt.Println(g.Loc.T("nav.level3", fm.Target()))
	}
}

func runTelegram(ctx context.Context, cfg *config.Config, cat *i18n.Catalog, opts app.Options, router *navigate.Router, logger *zap.Logger) {
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, logger.Named("telegram"))
	opts.Alerter = tn
	g, err := app.New(cat, opts)
	if err != nil {
		logger.Fatal("build game", zap.Error(err))
	}
	router.OnNavigate(func(_, target string) {
		if err := tn.SendWithRetry(ctx, g.Loc.T("nav.level3", target), 3); err != nil {
			logger.Error("send level-3 hand-off", zap.Error(err))
		}
	})

	if err := g.Start(ctx); err != nil {
		logger.Warn("initial state not loaded", zap.Error(err))
	}
	cmds := app.NewCommands(g, func() string { return notifier.FormatPage(g.Bind, g.Chart) })

	logger.Info("Telegram polling started")
	tn.StartPolling(ctx, cmds.HandleCommand)
}

func newLogger(level, file string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		zc.OutputPaths = []string{file}
		zc.ErrorOutputPaths = []string{file}
	}
	return zc.Build()
}
