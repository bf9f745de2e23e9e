package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"estatehub_backend/internals/testutil"
)

func TestJobsHaveValidSpecs(t *testing.T) {
	jobs := Jobs()
	require.Len(t, jobs, 5)
	s := New(nil)
	assert.NoError(t, s.Register(jobs))

	seen := map[string]bool{}
	for _, j := range jobs {
		assert.False(t, seen[j.Name], "duplicate job %s", j.Name)
		seen[j.Name] = true
	}
}

func TestSpecOverride(t *testing.T) {
	t.Setenv("CRON_OTP_PURGE", "@every 1m")
	for _, j := range Jobs() {
		if j.Name == "otp_purge" {
			assert.Equal(t, "@every 1m", j.Spec)
		}
	}

	t.Setenv("CRON_REINDEX", "not a spec")
	assert.Error(t, New(nil).Register(Jobs()))
}

func TestRunJobPassesDatabaseAndDeadline(t *testing.T) {
	db := testutil.NewDB(t)
	s := New(db)

	var gotDB *gorm.DB
	var deadline time.Time
	s.RunJob(Job{Name: "probe", Spec: "@hourly", Run: func(ctx context.Context, d *gorm.DB) (int64, error) {
		gotDB = d
		deadline, _ = ctx.Deadline()
		return 3, nil
	}})
	assert.Same(t, db, gotDB)
	assert.WithinDuration(t, time.Now().Add(jobTimeout), deadline, 5*time.Second)

	// Failures are logged, not raised.
	s.RunJob(Job{Name: "broken", Run: func(context.Context, *gorm.DB) (int64, error) {
		return 0, errors.New("boom")
	}})
}

func TestHousekeepingJobsRunOnEmptyDatabase(t *testing.T) {
	db := testutil.NewDB(t)
	for _, j := range Jobs() {
		n, err := j.Run(context.Background(), db)
		require.NoError(t, err, j.Name)
		assert.Zero(t, n, j.Name)
	}
}
