package symbols

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler refreshes the symbol list once at startup and then on a cron
// schedule evaluated in UTC.
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
}

func NewScheduler(logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		logger: logger,
	}
}

// Start runs load immediately in the background, then on every tick of
// spec. Successful results are handed to publish; failures are only logged
// by the loader and the previous list stays in place.
func (s *Scheduler) Start(spec string, load func() ([]string, error), publish func([]string)) error {
	job := func() {
		symbols, err := load()
		if err != nil || len(symbols) == 0 {
			return
		}
		publish(symbols)
	}

	if _, err := s.cron.AddFunc(spec, job); err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", spec, err)
	}

	go job()
	s.cron.Start()
	s.logger.Info("symbol refresh scheduled", zap.String("spec", spec))
	return nil
}

// Stop halts the schedule; a running job is not interrupted.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}
