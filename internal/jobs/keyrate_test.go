package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	calls atomic.Int32
	err   error
}

func (c *countingSource) RefreshKeyRate(context.Context) (float64, error) {
	c.calls.Add(1)
	return 21.5, c.err
}

func TestRefreshLogsOutcome(t *testing.T) {
	log, hook := test.NewNullLogger()

	src := &countingSource{}
	k, err := NewKeyRateRefresher(src, "@every 1h", log)
	require.NoError(t, err)

	k.Refresh(context.Background())
	assert.Equal(t, int32(1), src.calls.Load())
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)

	src.err = errors.New("upstream down")
	k.Refresh(context.Background())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestInvalidSchedule(t *testing.T) {
	log, _ := test.NewNullLogger()
	_, err := NewKeyRateRefresher(&countingSource{}, "every now and then", log)
	assert.Error(t, err)
}

func TestStartWarmsCache(t *testing.T) {
	log, _ := test.NewNullLogger()
	src := &countingSource{}
	k, err := NewKeyRateRefresher(src, "@every 1h", log)
	require.NoError(t, err)

	k.Start(context.Background())
	defer k.Stop()

	assert.Eventually(t, func() bool { return src.calls.Load() == 1 }, time.Second, 10*time.Millisecond)
}
