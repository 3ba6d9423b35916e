package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const refreshTimeout = 30 * time.Second

// KeyRateSource refreshes the cached key rate from upstream
type KeyRateSource interface {
	RefreshKeyRate(ctx context.Context) (float64, error)
}

// KeyRateRefresher keeps the cached key rate warm on a cron schedule
type KeyRateRefresher struct {
	source KeyRateSource
	log    *logrus.Logger
	cron   *cron.Cron
}

// NewKeyRateRefresher schedules a refresh on a cron schedule, e.g. "@every 6h"
func NewKeyRateRefresher(source KeyRateSource, schedule string, log *logrus.Logger) (*KeyRateRefresher, error) {
	k := &KeyRateRefresher{
		source: source,
		log:    log,
		cron:   cron.New(cron.WithChain(cron.Recover(cron.DiscardLogger))),
	}
	if _, err := k.cron.AddFunc(schedule, func() { k.Refresh(context.Background()) }); err != nil {
		return nil, fmt.Errorf("invalid key rate schedule %q: %w", schedule, err)
	}
	return k, nil
}

// Start warms the cache once and then runs on schedule
func (k *KeyRateRefresher) Start(ctx context.Context) {
	go k.Refresh(ctx)
	k.cron.Start()
}

// Stop halts the schedule and waits for a running refresh to finish
func (k *KeyRateRefresher) Stop() {
	<-k.cron.Stop().Done()
}

// Refresh fetches the key rate once. Failures are logged; the previous cached value stays valid until its TTL.
func (k *KeyRateRefresher) Refresh(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, refreshTimeout)
	defer cancel()

	rate, err := k.source.RefreshKeyRate(ctx)
	if err != nil {
		k.log.Warnf("Key rate refresh failed: %v", err)
		return
	}
	k.log.Infof("Key rate refreshed: %.2f%%", rate)
}
