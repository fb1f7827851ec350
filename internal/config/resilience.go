package config

import (
	"time"

	"sheet_poster/internal/retry"
)

// ResilienceConfig holds the retry policy for each external call the job makes.
// Retries default to zero: a failed run is picked up again by the next scheduled hour.
type ResilienceConfig struct {
	SheetRead retry.Config
	Send      retry.Config
}

var DefaultResilienceConfig = ResilienceConfig{
	SheetRead: retry.Config{
		MaxRetries: 0,
		BaseDelay:  2 * time.Second,
		MaxDelay:   30 * time.Second,
		Timeout:    30 * time.Second,
	},
	Send: retry.Config{
		MaxRetries: 0,
		BaseDelay:  1 * time.Second,
		MaxDelay:   15 * time.Second,
		Timeout:    30 * time.Second,
	},
}

// WithSheetRead returns a copy of c with the sheet read retry count and timeout replaced.
func (c ResilienceConfig) WithSheetRead(retries int, timeout time.Duration) ResilienceConfig {
	c.SheetRead.MaxRetries = retries
	c.SheetRead.Timeout = timeout
	return c
}

// WithSendTimeout returns a copy of c with the send timeout replaced.
func (c ResilienceConfig) WithSendTimeout(timeout time.Duration) ResilienceConfig {
	c.Send.Timeout = timeout
	return c
}
