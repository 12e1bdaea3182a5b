package scheduler

import (
	"github.com/robfig/cron/v3"
)

// ScheduledTask is one recurring cron job, e.g. the nightly Kite sync sweep.
// Cancel removes the entry and keeps an already-queued firing from running,
// so a replaced schedule never double-fires.
type ScheduledTask struct {
	cronID cron.EntryID
	cron   *cron.Cron
	cancel chan struct{}
}

// NewScheduledTask registers run under cronSpec (standard 5-field syntax)
// and starts the schedule immediately.
func NewScheduledTask(cronSpec string, run func()) (*ScheduledTask, error) {
	c := cron.New()
	cancel := make(chan struct{})
	task := &ScheduledTask{
		cron:   c,
		cancel: cancel,
	}

	id, err := c.AddFunc(cronSpec, func() {
		select {
		case <-cancel:
			return
		default:
			run()
		}
	})
	if err != nil {
		return nil, err
	}

	task.cronID = id
	c.Start()
	return task, nil
}

func (s *ScheduledTask) Cancel() {
	s.cron.Remove(s.cronID)
	close(s.cancel)
}
