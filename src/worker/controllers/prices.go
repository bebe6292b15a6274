package controllers

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"tracker/src/scheduler"
	"tracker/src/services"
	"tracker/src/utils"
)

const refreshTimeout = 2 * time.Minute

// RefreshPrices re-fetches the price of every held symbol.
func (c *Controller) RefreshPrices(ctx context.Context) (*services.RefreshResult, error) {
	ctx = utils.WithLogger(ctx, c.Logger)
	result, err := c.PortfolioService.RefreshPrices(ctx)
	if err != nil {
		c.Logger.WithError(err).Error("price refresh failed")
		return nil, err
	}
	c.Logger.WithFields(logrus.Fields{
		"resolved":   result.Resolved,
		"unresolved": result.Unresolved,
		"purged":     result.Purged,
	}).Info("prices refreshed")
	return result, nil
}

// SchedulePriceRefresh replaces the running refresh schedule with cronSpec.
func (c *Controller) SchedulePriceRefresh(cronSpec string) error {
	c.schedulerMutex.Lock()
	defer c.schedulerMutex.Unlock()

	if c.refreshTask != nil {
		c.refreshTask.Cancel()
		c.refreshTask = nil
	}

	task, err := scheduler.NewScheduledTask(cronSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()
		_, _ = c.RefreshPrices(ctx)
	})
	if err != nil {
		return err
	}
	c.refreshTask = task
	return nil
}

// StopScheduler cancels the refresh schedule, if any.
func (c *Controller) StopScheduler() {
	c.schedulerMutex.Lock()
	defer c.schedulerMutex.Unlock()

	if c.refreshTask != nil {
		c.refreshTask.Cancel()
		c.refreshTask = nil
	}
}

// NextPriceRefresh reports when the scheduled refresh runs next. ok is false
// when no schedule is active.
func (c *Controller) NextPriceRefresh() (next time.Time, ok bool) {
	c.schedulerMutex.Lock()
	defer c.schedulerMutex.Unlock()

	if c.refreshTask == nil {
		return time.Time{}, false
	}
	return c.refreshTask.Next(), true
}
