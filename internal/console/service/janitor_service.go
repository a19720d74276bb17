package service

import (
	"context"
	"time"

	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/internal/console/repository"
	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/pkg/logger"

	"github.com/robfig/cron/v3"
)

// JanitorService hard-purges account rows that have been soft-deleted
// longer than the retention window, on a cron schedule.
type JanitorService struct {
	accountRepo repository.AccountRepository
	logger      *logger.Logger
	schedule    string
	retention   time.Duration
	cron        *cron.Cron
}

// NewJanitorService creates a new janitor. schedule is a standard cron
// expression; retention is how long soft-deleted rows are kept.
func NewJanitorService(accountRepo repository.AccountRepository, schedule string, retention time.Duration, logger *logger.Logger) *JanitorService {
	return &JanitorService{
		accountRepo: accountRepo,
		logger:      logger,
		schedule:    schedule,
		retention:   retention,
	}
}

// Start registers the purge job and starts the cron scheduler.
func (s *JanitorService) Start() error {
	c := cron.New()
	if _, err := c.AddFunc(s.schedule, s.purge); err != nil {
		return err
	}
	c.Start()
	s.cron = c
	s.logger.Info("Janitor started", logger.Field("schedule", s.schedule), logger.Field("retention", s.retention.String()))
	return nil
}

// Stop stops the scheduler and waits for a running purge to finish.
func (s *JanitorService) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

func (s *JanitorService) purge() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cutoff := time.Now().Add(-s.retention)
	rows, err := s.accountRepo.PurgeDeletedBefore(ctx, cutoff)
	if err != nil {
		s.logger.Error("Account purge failed", logger.ErrorField(err))
		return
	}
	if rows > 0 {
		s.logger.Info("Purged soft-deleted accounts", logger.Field("rows", rows), logger.Field("cutoff", cutoff))
	}
}
