package jobs

import (
	"context"
	"time"

	"github.com/jordanlanch/salespipe/ent"
	"github.com/jordanlanch/salespipe/ent/activity"
	"github.com/jordanlanch/salespipe/pkg/domain"
	"github.com/jordanlanch/salespipe/pkg/logger"
	"github.com/robfig/cron/v3"
)

// CronManager manages scheduled jobs
type CronManager struct {
	cron   *cron.Cron
	db     *ent.Client
	mailer domain.Mailer
	cache  domain.CacheRepository
	log    logger.Logger
}

// NewCronManager creates a new cron manager. mailer and cache may be
// nil; the corresponding jobs degrade to no-ops.
func NewCronManager(db *ent.Client, mailer domain.Mailer, cache domain.CacheRepository, log logger.Logger) *CronManager {
	return &CronManager{
		cron:   cron.New(),
		db:     db,
		mailer: mailer,
		cache:  cache,
		log:    log,
	}
}

// SetupJobs configures all scheduled jobs
func (cm *CronManager) SetupJobs() error {
	// Daily at 8 AM: remind owners of activities scheduled in the next
	// 24 hours.
	_, err := cm.cron.AddFunc("0 8 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		if err := cm.SendActivityReminders(ctx); err != nil {
			cm.log.Error("activity reminder job failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	// Hourly: drop stale dashboard aggregates so the next request
	// recomputes them.
	_, err = cm.cron.AddFunc("0 * * * *", func() {
		if cm.cache == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := cm.cache.DeletePattern(ctx, "dashboard:*"); err != nil {
			cm.log.Error("dashboard cache sweep failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	cm.log.Info("cron jobs configured",
		"reminders", "daily at 8 AM",
		"cache_sweep", "hourly")
	return nil
}

// SendActivityReminders emails each activity author about their
// activities scheduled within the next 24 hours. Individual send
// failures are logged and do not abort the batch.
func (cm *CronManager) SendActivityReminders(ctx context.Context) error {
	if cm.mailer == nil {
		return nil
	}

	now := time.Now()
	rows, err := cm.db.Activity.Query().
		Where(
			activity.ScheduledAtGTE(now),
			activity.ScheduledAtLTE(now.Add(24*time.Hour)),
		).
		WithLead().
		WithUser().
		All(ctx)
	if err != nil {
		return err
	}

	sent := 0
	for _, a := range rows {
		owner := a.Edges.User
		l := a.Edges.Lead
		if owner == nil || l == nil || !owner.IsActive {
			continue
		}
		name := owner.FirstName + " " + owner.LastName
		if err := cm.mailer.SendActivityReminderEmail(owner.Email, name, a, l); err != nil {
			cm.log.Warn("reminder email failed", "activity_id", a.ID, "to", owner.Email, "error", err)
			continue
		}
		sent++
	}

	cm.log.Info("activity reminders dispatched", "scheduled", len(rows), "sent", sent)
	return nil
}

// Start starts the cron scheduler
func (cm *CronManager) Start() {
	cm.cron.Start()
}

// Stop stops the cron scheduler
func (cm *CronManager) Stop() {
	cm.cron.Stop()
}
