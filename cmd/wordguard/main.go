package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	api "github.com/OvyFlash/telegram-bot-api"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"

	"github.com/iamwavecut/wordguard/internal/bot"
	"github.com/iamwavecut/wordguard/internal/config"
	adminHandlers "github.com/iamwavecut/wordguard/internal/handlers/admin"
	moderation "github.com/iamwavecut/wordguard/internal/handlers/moderation"
	"github.com/iamwavecut/wordguard/internal/i18n"
	"github.com/iamwavecut/wordguard/internal/infra"
	"github.com/iamwavecut/wordguard/internal/lifecycle"
	"github.com/iamwavecut/wordguard/internal/observability"
	"github.com/iamwavecut/wordguard/internal/patterns"
	"github.com/iamwavecut/wordguard/internal/policy/access"
)

const shutdownTimeout = 10 * time.Second

func main() {
	log.SetOutput(os.Stdout)
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatalln("cant load config")
	}

	logFile, err := config.SetupLogging(cfg.Log)
	if err != nil {
		log.WithError(err).Fatalln("cant setup logging")
	}
	defer logFile.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	botAPI, err := api.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		log.WithError(err).Fatalln("cant initialize bot api")
	}
	if log.Level(cfg.Log.Level) == log.TraceLevel {
		botAPI.Debug = true
	}
	log.WithField("username", botAPI.Self.UserName).Info("authorized")

	if langs := i18n.Languages(); !lo.Contains(langs, cfg.DefaultLanguage) {
		log.WithFields(log.Fields{
			"lang":      cfg.DefaultLanguage,
			"available": langs,
		}).Warn("no translations for language, replies fall back to english")
	}

	store := patterns.NewStore(cfg.WordsFile, cfg.MatchTimeout)
	if err := infra.EnsureParentDir(store.Path()); err != nil {
		log.WithError(err).Fatalln("cant prepare words file directory")
	}
	admins := access.NewSet(cfg.AdminIDs)
	whitelist := access.NewSet(cfg.WhitelistedUserIDs)
	log.WithFields(log.Fields{
		"admins":      admins.Len(),
		"whitelisted": whitelist.Len(),
	}).Info("access lists loaded")

	banService := moderation.NewBanService(botAPI)
	updateProcessor := bot.NewUpdateProcessor(
		[]bot.NamedHandler{
			{Name: "admin", Handler: adminHandlers.NewAdmin(botAPI, botAPI.Self.UserName, store, admins, cfg.DefaultLanguage)},
			{Name: "wordfilter", Handler: moderation.NewWordFilter(botAPI, banService, store, whitelist, cfg.DefaultLanguage)},
		},
		cfg.EnabledHandlers,
		cfg.Polling.UpdateMaxAge,
	)

	runtime := lifecycle.NewRuntime()
	runtime.Register("tracing", observability.NewTracerProvider())
	runtime.Register("metrics", observability.NewMetricsServer(cfg.MetricsAddr))
	runtime.Register("patterns", store)
	runtime.Register("poller", bot.NewPoller(botAPI, updateProcessor, cfg.Polling.Timeout))

	if err := runtime.Start(ctx); err != nil {
		log.WithError(err).Fatalln("cant start")
	}

	var execChanged <-chan struct{}
	if cfg.WatchExecutable {
		execChanged = infra.WatchExecutable(ctx, infra.DefaultWatchInterval)
	}

	select {
	case <-ctx.Done():
		log.Info("shutting down")
	case <-execChanged:
		log.Warn("executable file was modified, shutting down")
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := runtime.Stop(stopCtx); err != nil {
		log.WithError(err).Error("cant stop cleanly")
	}
}
