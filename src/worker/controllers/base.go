package controllers

import (
	"context"
	"sync"

	"kitesync/src/scheduler"
	"kitesync/src/services"
	"kitesync/src/utils"
)

type Controller struct {
	BatchService services.BatchSyncServiceI

	schedulerMutex sync.Mutex
	dailyTask      *scheduler.ScheduledTask
}

func NewController(batchService services.BatchSyncServiceI) *Controller {
	return &Controller{BatchService: batchService}
}

// ScheduleDailySync installs (or replaces) the cron entry driving the daily
// batch run.
func (c *Controller) ScheduleDailySync(ctx context.Context, cronSpec string) error {
	c.schedulerMutex.Lock()
	defer c.schedulerMutex.Unlock()

	if c.dailyTask != nil {
		c.dailyTask.Cancel()
		c.dailyTask = nil
	}

	logger := utils.LoggerFromContext(ctx)
	task, err := scheduler.NewScheduledTask(cronSpec, func() {
		c.BatchService.RunDailySync(utils.WithLogger(context.Background(), logger))
	})
	if err != nil {
		return err
	}

	c.dailyTask = task
	return nil
}

// RunAll triggers the batch immediately, outside the schedule.
func (c *Controller) RunAll(ctx context.Context) {
	c.BatchService.RunDailySync(ctx)
}
