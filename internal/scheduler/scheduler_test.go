package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestRegister_InvalidSpec(t *testing.T) {
	s := NewScheduler(context.Background(), func(context.Context) error { return nil }, nil)
	assert.Error(t, s.Register("every tuesday"))
	assert.Empty(t, s.Cron.Entries())
}

func TestRegister_SecondsField(t *testing.T) {
	s := NewScheduler(context.Background(), func(context.Context) error { return nil }, nil)
	require.NoError(t, s.Register("0 30 18 * * 1-5"))
	assert.Len(t, s.Cron.Entries(), 1)
}

func TestRunNow_PassesContextAndError(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "v")
	want := errors.New("boom")
	s := NewScheduler(ctx, func(got context.Context) error {
		assert.Equal(t, "v", got.Value(key{}))
		return want
	}, nil)
	assert.ErrorIs(t, s.RunNow(), want)
}

func TestScheduler_RunsJob(t *testing.T) {
	var runs atomic.Int32
	s := NewScheduler(context.Background(), func(context.Context) error {
		runs.Add(1)
		return errors.New("logged, not fatal")
	}, zaptest.NewLogger(t))
	require.NoError(t, s.Register("* * * * * *"))

	s.Start()
	assert.Eventually(t, func() bool { return runs.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)
	s.Stop()
}

func TestScheduler_SkipsAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var runs atomic.Int32
	s := NewScheduler(ctx, func(context.Context) error { runs.Add(1); return nil }, nil)
	s.run()
	assert.Equal(t, int32(0), runs.Load())
}
