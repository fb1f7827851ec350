package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Service fires registered jobs on cron schedules in a fixed time zone.
// A job whose previous run is still in flight is skipped, not queued.
type Service struct {
	mu      sync.Mutex
	loc     *time.Location
	c       *cron.Cron
	entries map[string]cron.EntryID
	started bool
}

func New(loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	logger := cronLogger{}
	return &Service{
		loc: loc,
		c: cron.New(
			cron.WithParser(parser),
			cron.WithLocation(loc),
			cron.WithLogger(logger),
			cron.WithChain(jobChain(logger)),
		),
		entries: make(map[string]cron.EntryID),
	}
}

func jobChain(logger cron.Logger) cron.JobWrapper {
	return func(j cron.Job) cron.Job {
		return cron.NewChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)).Then(j)
	}
}

// Add registers run under name. ctx is handed to every invocation, so cancelling it
// aborts a run in progress.
func (s *Service) Add(ctx context.Context, name, spec string, run func(ctx context.Context)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[name]; exists {
		return fmt.Errorf("job %q already registered", name)
	}

	id, err := s.c.AddFunc(spec, func() {
		started := time.Now()
		log.Info().Str("job", name).Msg("Scheduled run starting")
		run(ctx)
		log.Info().
			Str("job", name).
			Dur("duration", time.Since(started)).
			Msg("Scheduled run finished")
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	s.entries[name] = id

	log.Debug().Str("job", name).Str("spec", spec).Msg("Registered scheduled job")
	return nil
}

func (s *Service) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true
	s.c.Start()

	for name, id := range s.entries {
		log.Info().
			Str("job", name).
			Time("next_run", s.c.Entry(id).Next).
			Str("tz", s.loc.String()).
			Msg("Scheduler started")
	}
}

// Stop halts the trigger and waits for a running job to finish or ctx to expire.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = false
	done := s.c.Stop().Done()
	s.mu.Unlock()

	select {
	case <-done:
		log.Info().Msg("Scheduler stopped")
		return nil
	case <-ctx.Done():
		return errors.New("timed out waiting for running job to finish")
	}
}

// Next reports when the named job fires next; zero if unknown or not started.
func (s *Service) Next(name string) time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.entries[name]
	if !ok {
		return time.Time{}
	}
	return s.c.Entry(id).Next
}

// Validate checks a five-field cron expression or descriptor such as "@hourly".
func Validate(spec string) error {
	_, err := parser.Parse(spec)
	return err
}

// NextRuns lists the next n fire times of spec after from, in from's location.
func NextRuns(spec string, from time.Time, n int) ([]time.Time, error) {
	schedule, err := parser.Parse(spec)
	if err != nil {
		return nil, err
	}
	runs := make([]time.Time, 0, n)
	t := from
	for i := 0; i < n; i++ {
		t = schedule.Next(t)
		if t.IsZero() {
			break
		}
		runs = append(runs, t)
	}
	return runs, nil
}

// cronLogger routes cron's internal messages to zerolog.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	event(log.Debug(), keysAndValues).Msg(msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	event(log.Error().Err(err), keysAndValues).Msg(msg)
}

func event(e *zerolog.Event, keysAndValues []interface{}) *zerolog.Event {
	if len(keysAndValues) == 0 {
		return e
	}
	return e.Fields(keysAndValues)
}
