package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"voice-assistant-engine/config"
	_ "voice-assistant-engine/docs" // Swagger docs
	"voice-assistant-engine/internal/classifier"
	"voice-assistant-engine/internal/command/collaborator"
	commandHTTP "voice-assistant-engine/internal/command/delivery/http"
	tgDelivery "voice-assistant-engine/internal/command/delivery/telegram"
	"voice-assistant-engine/internal/command/usecase"
	"voice-assistant-engine/internal/confirm"
	"voice-assistant-engine/internal/fallback"
	"voice-assistant-engine/internal/httpserver"
	"voice-assistant-engine/internal/memory"
	"voice-assistant-engine/internal/middleware"
	"voice-assistant-engine/internal/model"
	"voice-assistant-engine/internal/normalizer"
	"voice-assistant-engine/internal/slots"
	"voice-assistant-engine/pkg/gsearch"
	"voice-assistant-engine/pkg/log"
	"voice-assistant-engine/pkg/spotify"
	"voice-assistant-engine/pkg/telegram"
)

// @title       Voice Assistant Command Engine API
// @description Intent classification and command routing engine exposed over HTTP and Telegram.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Voice Assistant Command Engine...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Collaborators: each is optional, gated on its credentials. A
	// missing collaborator leaves its intents unsupported rather than
	// failing startup.
	var collabs usecase.Collaborators

	collabs.Launcher = collaborator.NewExecLauncher(logger)

	collabs.Browser = collaborator.NewRodBrowser(logger, collaborator.RodConfig{
		Headless:  cfg.Browser.Headless,
		Timeout:   cfg.Browser.Timeout,
		SearchURL: cfg.Browser.SearchURL,
	})

	var telegramBot *telegram.Bot
	if cfg.Telegram.BotToken != "" {
		telegramBot = telegram.NewBot(cfg.Telegram.BotToken)
		collabs.Messenger = collaborator.NewTelegramMessenger(logger, telegramBot, cfg.Engine.Contacts)
	} else {
		logger.Warn(ctx, "Telegram disabled: TELEGRAM_BOT_TOKEN is missing")
	}

	if cfg.Spotify.ClientID != "" && cfg.Spotify.ClientSecret != "" {
		player, spErr := spotify.New(spotify.Config{
			ClientID:     cfg.Spotify.ClientID,
			ClientSecret: cfg.Spotify.ClientSecret,
		})
		if spErr != nil {
			logger.Warnf(ctx, "Spotify not available (optional): %v", spErr)
		} else {
			collabs.Media = collaborator.NewSpotifyMedia(logger, player)
		}
	} else {
		logger.Warn(ctx, "Media control disabled: SPOTIFY_CLIENT_ID or SPOTIFY_CLIENT_SECRET is missing")
	}

	if cfg.GoogleSearch.APIKey != "" && cfg.GoogleSearch.EngineID != "" {
		searchClient, gsErr := gsearch.NewClient(ctx, cfg.GoogleSearch.APIKey, cfg.GoogleSearch.EngineID)
		if gsErr != nil {
			logger.Warnf(ctx, "Google Search not available (optional): %v", gsErr)
		} else {
			collabs.Scraper = collaborator.NewSearchScraper(logger, searchClient)
		}
	} else {
		logger.Warn(ctx, "Web scraping disabled: GOOGLE_SEARCH_API_KEY or GOOGLE_SEARCH_ENGINE_ID is missing")
	}

	// 4. Routing engine
	cls, err := classifier.New(logger, classifier.Config{CacheSize: cfg.Engine.ClassifierCacheSize})
	if err != nil {
		logger.Error(ctx, "Failed to initialize classifier: ", err)
		return
	}

	gate := classifier.GateConfig{
		Threshold: cfg.Engine.DecisionThreshold,
		Margin:    cfg.Engine.DecisionMargin,
	}
	extractor := slots.New(cfg.Engine.Applications)

	sensitive := make([]model.Intent, 0, len(cfg.Engine.SensitiveIntents))
	for _, s := range cfg.Engine.SensitiveIntents {
		in := model.Intent(s)
		if !in.Valid() {
			logger.Warnf(ctx, "Ignoring unknown sensitive intent %q", s)
			continue
		}
		sensitive = append(sensitive, in)
	}

	commandUC := usecase.New(
		logger,
		usecase.Config{Gate: gate, SensitiveIntents: sensitive},
		normalizer.New(cfg.Engine.WakeWords),
		cls,
		extractor,
		fallback.New(logger, extractor, gate),
		memory.New(logger, cfg.Engine.MemoryMaxRecords, nil),
		confirm.New(logger, cfg.Engine.ConfirmationTimeout),
		collabs,
	)

	// 5. Delivery
	commandHandler := commandHTTP.New(logger, commandUC)

	var telegramHandler tgDelivery.Handler
	if telegramBot != nil {
		telegramHandler = tgDelivery.New(logger, commandUC, telegramBot)

		// Register webhook: auto-detect ngrok or fall back to manual config
		webhookURL := cfg.Telegram.WebhookURL
		if webhookURL == "" {
			ngrokURL, ngrokErr := detectNgrokURL(ctx, "http://ngrok:4040")
			if ngrokErr != nil {
				logger.Warnf(ctx, "Could not detect ngrok URL: %v", ngrokErr)
			} else {
				webhookURL = ngrokURL + "/webhook/telegram"
				logger.Infof(ctx, "Auto-detected ngrok URL: %s", webhookURL)
			}
		}
		if webhookURL != "" {
			if whErr := telegramBot.SetWebhook(webhookURL); whErr != nil {
				logger.Warnf(ctx, "Failed to set Telegram webhook: %v", whErr)
			} else {
				logger.Infof(ctx, "✅ Telegram webhook registered at %s", webhookURL)
			}
		}
	}

	// 6. HTTP Server
	mw := middleware.New(logger, middleware.Config{RateLimitPerMin: cfg.HTTPServer.RateLimitPerMin})

	httpServer, err := httpserver.New(logger, httpserver.Config{
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		Middleware:      mw,
		CommandHandler:  commandHandler,
		TelegramHandler: telegramHandler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 7. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
