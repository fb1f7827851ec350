package job

import (
	"context"
	"time"

	"sheet_poster/internal/app"
	"sheet_poster/internal/post"
	"sheet_poster/internal/retry"
	"sheet_poster/internal/schedule"
	"sheet_poster/internal/sheets"

	"github.com/rs/zerolog/log"
)

// FailureMessage is posted to the admin channel whenever a scheduled post could not go out.
const FailureMessage = "Произошла ошибка чтения из Google Sheet. Пост не выставлен!"

// Messenger publishes to chat channels.
type Messenger interface {
	SendPhotos(ctx context.Context, chatID string, urls []string) error
	SendHTML(ctx context.Context, chatID, text string) error
}

// Report describes what one run dispatched.
type Report struct {
	Location      schedule.Location
	ReadOK        bool
	Payload       post.Payload
	PhotosSent    bool
	CaptionSent   bool
	AdminNotified bool
}

type Job struct {
	cfg       app.Config
	reader    sheets.ColumnReader
	messenger Messenger
	now       func() time.Time
}

func New(cfg app.Config, reader sheets.ColumnReader, messenger Messenger) *Job {
	return &Job{
		cfg:       cfg,
		reader:    reader,
		messenger: messenger,
		now:       time.Now,
	}
}

// Run publishes the post scheduled for the current time in the configured location.
func (j *Job) Run(ctx context.Context) Report {
	loc := j.cfg.Location
	if loc == nil {
		loc = time.Local
	}
	return j.RunAt(ctx, j.now().In(loc))
}

// RunAt publishes the post scheduled for t. Sends are strictly sequential.
func (j *Job) RunAt(ctx context.Context, t time.Time) Report {
	loc := schedule.Locate(t)
	report := Report{Location: loc}

	log.Info().
		Str("sheet", loc.Sheet).
		Str("column", loc.Column).
		Time("at", t).
		Msg("Reading scheduled post")

	rows, ok := sheets.ReadColumnData(ctx, j.reader, j.cfg.SpreadsheetID, loc, j.cfg.Resilience.SheetRead)
	if !ok {
		report.AdminNotified = j.notifyAdmin(ctx)
		return report
	}
	report.ReadOK = true

	payload := post.Extract(rows)
	report.Payload = payload
	log.Debug().
		Int("images", len(payload.Images)).
		Int("caption_length", len(payload.Caption)).
		Msg("Extracted post")
	if !payload.HasContent() {
		log.Warn().Str("range", loc.Range()).Msg("Column has neither caption nor image links")
	}

	report.PhotosSent = j.sendPhotos(ctx, payload.Images)
	report.CaptionSent = j.sendCaption(ctx, payload.Caption)
	if !report.CaptionSent {
		report.AdminNotified = j.notifyAdmin(ctx)
		return report
	}

	log.Info().
		Str("range", loc.Range()).
		Int("images", len(payload.Images)).
		Msg("Post published")
	return report
}

// sendPhotos never blocks the caption: a failure here is only logged.
func (j *Job) sendPhotos(ctx context.Context, images []string) bool {
	if len(images) == 0 {
		log.Warn().Msg("No image links found, skipping media group")
		return false
	}

	err := retry.Do(ctx, j.cfg.Resilience.Send, "send photos", func(ctx context.Context) error {
		return j.messenger.SendPhotos(ctx, j.cfg.ChannelID, images)
	})
	if err != nil {
		log.Error().Err(err).Int("images", len(images)).Msg("Failed to send media group")
		return false
	}

	log.Info().Int("images", len(images)).Msg("Media group sent to channel")
	return true
}

func (j *Job) sendCaption(ctx context.Context, caption string) bool {
	err := retry.Do(ctx, j.cfg.Resilience.Send, "send caption", func(ctx context.Context) error {
		return j.messenger.SendHTML(ctx, j.cfg.ChannelID, caption)
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to send caption")
		return false
	}

	log.Info().Msg("Caption sent to channel")
	return true
}

func (j *Job) notifyAdmin(ctx context.Context) bool {
	err := retry.Do(ctx, j.cfg.Resilience.Send, "notify admin", func(ctx context.Context) error {
		return j.messenger.SendHTML(ctx, j.cfg.AdminChannelID, FailureMessage)
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to notify admin channel")
		return false
	}

	log.Warn().Msg("Admin channel notified, post not published")
	return true
}
