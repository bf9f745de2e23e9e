// Package scheduler runs the periodic housekeeping jobs.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"estatehub_backend/internals/configs"
	boostService "estatehub_backend/internals/features/billing/boosts/service"
	propertyService "estatehub_backend/internals/features/properties/properties/service"
	authService "estatehub_backend/internals/features/users/auth/service"
	"estatehub_backend/internals/helpers/dbtime"
	"estatehub_backend/internals/logger"
	"estatehub_backend/internals/metrics"
)

const jobTimeout = 4 * time.Minute

// Job is one scheduled unit of work. Run returns how many rows it touched.
type Job struct {
	Name string
	Spec string
	Run  func(ctx context.Context, db *gorm.DB) (int64, error)
}

// Jobs lists the housekeeping work. Specs can be overridden per job through the environment.
func Jobs() []Job {
	return []Job{
		{
			Name: "otp_purge",
			Spec: configs.GetEnv("CRON_OTP_PURGE", "*/15 * * * *"),
			Run: func(ctx context.Context, db *gorm.DB) (int64, error) {
				return authService.PurgeOTPs(ctx, db, time.Now().Add(-time.Hour))
			},
		},
		{
			Name: "token_blacklist_purge",
			Spec: configs.GetEnv("CRON_BLACKLIST_PURGE", "30 3 * * *"),
			Run: func(ctx context.Context, db *gorm.DB) (int64, error) {
				return authService.PurgeBlacklist(ctx, db, time.Now())
			},
		},
		{
			Name: "boost_expiry",
			Spec: configs.GetEnv("CRON_BOOST_EXPIRY", "5 * * * *"),
			Run: func(ctx context.Context, db *gorm.DB) (int64, error) {
				n, err := boostService.ExpireBoosts(ctx, db)
				return int64(n), err
			},
		},
		{
			Name: "listing_expiry",
			Spec: configs.GetEnv("CRON_LISTING_EXPIRY", "10 * * * *"),
			Run: func(ctx context.Context, db *gorm.DB) (int64, error) {
				n, err := propertyService.ExpireListings(ctx, db, time.Now())
				return int64(n), err
			},
		},
		{
			Name: "search_reindex",
			Spec: configs.GetEnv("CRON_REINDEX", "0 2 * * *"),
			Run: func(ctx context.Context, db *gorm.DB) (int64, error) {
				n, err := propertyService.Reindex(ctx, db)
				return int64(n), err
			},
		},
	}
}

type Scheduler struct {
	cron *cron.Cron
	db   *gorm.DB
}

func New(db *gorm.DB) *Scheduler {
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(dbtime.Location()),
			cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger)),
		),
		db: db,
	}
}

// Register adds every job; a bad spec aborts startup.
func (s *Scheduler) Register(jobs []Job) error {
	for _, j := range jobs {
		j := j
		if _, err := s.cron.AddFunc(j.Spec, func() { s.RunJob(j) }); err != nil {
			return err
		}
		logger.L().Info("scheduled job", zap.String("job", j.Name), zap.String("spec", j.Spec))
	}
	return nil
}

// RunJob executes j once with a bounded context and records the outcome.
func (s *Scheduler) RunJob(j Job) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := time.Now()
	n, err := j.Run(ctx, s.db)
	metrics.SchedulerRuns.WithLabelValues(j.Name, metrics.Result(err)).Inc()
	if err != nil {
		logger.L().Error("job failed", zap.String("job", j.Name), zap.Error(err))
		return
	}
	logger.L().Info("job done",
		zap.String("job", j.Name),
		zap.Int64("rows", n),
		zap.Duration("took", time.Since(start)),
	)
}

func (s *Scheduler) Start() { s.cron.Start() }

// Stop waits for running jobs to finish or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}
