package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Engine tunables
	Engine EngineConfig

	// Collaborators
	Telegram     TelegramConfig
	Spotify      SpotifyConfig
	GoogleSearch GoogleSearchConfig
	Browser      BrowserConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port            int
	Mode            string
	RateLimitPerMin int
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// EngineConfig holds the routing engine tunables.
type EngineConfig struct {
	// DecisionThreshold and DecisionMargin form the two-part confidence
	// gate: the top candidate must clear the threshold AND lead the
	// runner-up by the margin.
	DecisionThreshold float64
	DecisionMargin    float64

	WakeWords        []string
	SensitiveIntents []string
	Applications     []string

	MemoryMaxRecords    int
	ConfirmationTimeout time.Duration
	ClassifierCacheSize int

	// Contacts maps contact names to Telegram chat IDs.
	Contacts map[string]int64
}

type TelegramConfig struct {
	BotToken   string
	WebhookURL string
}

type SpotifyConfig struct {
	ClientID     string
	ClientSecret string
}

type GoogleSearchConfig struct {
	APIKey   string
	EngineID string
}

type BrowserConfig struct {
	Headless  bool
	Timeout   time.Duration
	SearchURL string
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.HTTPServer.RateLimitPerMin = viper.GetInt("http_server.rate_limit_per_min")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Engine
	cfg.Engine.DecisionThreshold = viper.GetFloat64("engine.decision_threshold")
	cfg.Engine.DecisionMargin = viper.GetFloat64("engine.decision_margin")
	cfg.Engine.WakeWords = splitList(viper.GetString("engine.wake_words"))
	cfg.Engine.SensitiveIntents = splitList(viper.GetString("engine.sensitive_intents"))
	cfg.Engine.Applications = splitList(viper.GetString("engine.applications"))
	cfg.Engine.MemoryMaxRecords = viper.GetInt("engine.memory_max_records")
	cfg.Engine.ConfirmationTimeout = viper.GetDuration("engine.confirmation_timeout")
	cfg.Engine.ClassifierCacheSize = viper.GetInt("engine.classifier_cache_size")

	cfg.Engine.Contacts = make(map[string]int64)
	for name, chatID := range viper.GetStringMap("engine.contacts") {
		switch v := chatID.(type) {
		case int:
			cfg.Engine.Contacts[name] = int64(v)
		case int64:
			cfg.Engine.Contacts[name] = v
		case float64:
			cfg.Engine.Contacts[name] = int64(v)
		}
	}

	// Collaborators
	cfg.Telegram.BotToken = viper.GetString("telegram.bot_token")
	cfg.Telegram.WebhookURL = viper.GetString("telegram.webhook_url")
	if tgToken := viper.GetString("telegram_bot_token"); tgToken != "" {
		cfg.Telegram.BotToken = tgToken
	}

	cfg.Spotify.ClientID = viper.GetString("spotify.client_id")
	cfg.Spotify.ClientSecret = viper.GetString("spotify.client_secret")
	if spotifyID := viper.GetString("spotify_client_id"); spotifyID != "" {
		cfg.Spotify.ClientID = spotifyID
	}
	if spotifySecret := viper.GetString("spotify_client_secret"); spotifySecret != "" {
		cfg.Spotify.ClientSecret = spotifySecret
	}

	cfg.GoogleSearch.APIKey = viper.GetString("google_search.api_key")
	cfg.GoogleSearch.EngineID = viper.GetString("google_search.engine_id")
	if gsKey := viper.GetString("google_search_api_key"); gsKey != "" {
		cfg.GoogleSearch.APIKey = gsKey
	}
	if gsEngine := viper.GetString("google_search_engine_id"); gsEngine != "" {
		cfg.GoogleSearch.EngineID = gsEngine
	}

	cfg.Browser.Headless = viper.GetBool("browser.headless")
	cfg.Browser.Timeout = viper.GetDuration("browser.timeout")
	cfg.Browser.SearchURL = viper.GetString("browser.search_url")

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("http_server.rate_limit_per_min", 60)
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	// Engine defaults
	viper.SetDefault("engine.decision_threshold", 0.6)
	viper.SetDefault("engine.decision_margin", 0.1)
	viper.SetDefault("engine.wake_words", "samantha,hey samantha")
	viper.SetDefault("engine.sensitive_intents", "message_send")
	viper.SetDefault("engine.applications",
		"spotify,brave browser,chrome,firefox,terminal,whatsapp,slack,discord,vlc,calculator")
	viper.SetDefault("engine.memory_max_records", 100)
	viper.SetDefault("engine.confirmation_timeout", "30s")
	viper.SetDefault("engine.classifier_cache_size", 512)

	// Browser defaults
	viper.SetDefault("browser.headless", true)
	viper.SetDefault("browser.timeout", "20s")
	viper.SetDefault("browser.search_url", "https://www.google.com/search?q=%s")
}

// splitList parses a comma-separated list, trimming blanks.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
