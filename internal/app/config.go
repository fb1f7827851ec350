package app

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"sheet_poster/internal/config"
	"sheet_poster/internal/sheets"
	"sheet_poster/internal/telegram"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetupEnvironment loads .env file and configures zerolog output and log level.
func SetupEnvironment() {
	// Load .env file if it exists
	err := godotenv.Load()

	if os.Getenv("ENV") == "production" {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = log.Output(os.Stderr)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	level, known := parseLogLevel(os.Getenv("LOGLEVEL"), os.Getenv("ENV") == "production")
	zerolog.SetGlobalLevel(level)
	if !known {
		log.Warn().Msgf("Unknown LOGLEVEL '%s', defaulting to info.", os.Getenv("LOGLEVEL"))
	}

	// wait until now to report on the .env file so we have the chance to set up logging first
	if err == nil {
		log.Debug().Msg("Loaded environment variables from .env file.")
	} else {
		log.Debug().Msg("No .env file found or error loading .env file; proceeding with existing environment variables.")
	}
}

func parseLogLevel(raw string, production bool) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "fatal":
		return zerolog.FatalLevel, true
	case "panic":
		return zerolog.PanicLevel, true
	case "disabled":
		return zerolog.Disabled, true
	case "":
		if production {
			return zerolog.WarnLevel, true
		}
		return zerolog.InfoLevel, true
	default:
		return zerolog.InfoLevel, false
	}
}

// GetEnvWithDefault fetches an environment variable with a default fallback.
func GetEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// LoadConfig reads the job configuration from the environment.
// All missing required variables are reported together.
func LoadConfig() (Config, error) {
	var missing []string
	required := func(key string) string {
		value := strings.TrimSpace(os.Getenv(key))
		if value == "" {
			missing = append(missing, key)
		}
		return value
	}

	cfg := Config{
		BotToken:        required("BOT_TOKEN"),
		ChannelID:       required("CHANNEL_ID"),
		AdminChannelID:  required("ADMIN_CHANNEL_ID"),
		SpreadsheetID:   required("GOOGLE_SHEETS_SPREADSHEET_ID"),
		CredentialsFile: GetEnvWithDefault("GOOGLE_CREDENTIALS_FILE", DefaultCredentialsFile),
		Schedule:        GetEnvWithDefault("SCHEDULE", DefaultSchedule),
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	loc, err := LoadLocation(os.Getenv("TIMEZONE"))
	if err != nil {
		return Config{}, err
	}
	cfg.Location = loc

	retries, err := strconv.Atoi(GetEnvWithDefault("SHEET_READ_RETRIES", "0"))
	if err != nil || retries < 0 {
		return Config{}, fmt.Errorf("invalid SHEET_READ_RETRIES %q", os.Getenv("SHEET_READ_RETRIES"))
	}
	readTimeout, err := parseDurationEnv("SHEET_READ_TIMEOUT", config.DefaultResilienceConfig.SheetRead.Timeout)
	if err != nil {
		return Config{}, err
	}
	sendTimeout, err := parseDurationEnv("SEND_TIMEOUT", config.DefaultResilienceConfig.Send.Timeout)
	if err != nil {
		return Config{}, err
	}
	cfg.Resilience = config.DefaultResilienceConfig.
		WithSheetRead(retries, readTimeout).
		WithSendTimeout(sendTimeout)

	log.Debug().
		Str("channel_id", cfg.ChannelID).
		Str("admin_channel_id", cfg.AdminChannelID).
		Str("credentials_file", cfg.CredentialsFile).
		Str("schedule", cfg.Schedule).
		Str("timezone", cfg.Location.String()).
		Int("sheet_read_retries", retries).
		Msg("Loaded configuration")

	return cfg, nil
}

// LoadLocation resolves an IANA zone name; empty or "Local" means the host zone.
func LoadLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", name, err)
	}
	return loc, nil
}

func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid %s %q", key, raw)
	}
	return d, nil
}

// InitializeClients creates the Google Sheets reader and the Telegram publisher.
func InitializeClients(ctx context.Context, cfg Config) (*sheets.Client, *telegram.Client, error) {
	log.Debug().Msg("Initializing clients")

	sheetsClient, err := sheets.NewClient(ctx, cfg.CredentialsFile)
	if err != nil {
		return nil, nil, err
	}

	telegramClient, err := telegram.NewClient(cfg.BotToken, cfg.Resilience.Send.Timeout)
	if err != nil {
		return nil, nil, err
	}

	log.Debug().Msg("Clients initialized successfully")
	return sheetsClient, telegramClient, nil
}
