package app

import (
	"time"

	"sheet_poster/internal/config"
)

// Config is loaded once at start-up and never mutated afterwards.
type Config struct {
	BotToken        string
	ChannelID       string // public channel receiving posts
	AdminChannelID  string // operational failure notices only
	SpreadsheetID   string
	CredentialsFile string

	Schedule string // cron expression for the trigger
	Location *time.Location

	Resilience config.ResilienceConfig
}

const (
	DefaultSchedule        = "0 8-21 * * *"
	DefaultCredentialsFile = "credentials.json"
)
