package scheduler

import (
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// ScheduledTask runs a function on a cron schedule. A run that is still in
// progress when the next tick fires causes that tick to be skipped.
type ScheduledTask struct {
	cronID cron.EntryID
	cron   *cron.Cron
	cancel chan struct{}
	once   sync.Once
}

func NewScheduledTask(cronSpec string, taskFunc func()) (*ScheduledTask, error) {
	c := cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger)))
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
			taskFunc()
		}
	})
	if err != nil {
		return nil, err
	}

	task.cronID = id
	c.Start()
	return task, nil
}

// Next reports when the task fires next.
func (s *ScheduledTask) Next() time.Time {
	return s.cron.Entry(s.cronID).Next
}

// Cancel stops the schedule. It is safe to call more than once.
func (s *ScheduledTask) Cancel() {
	s.once.Do(func() {
		s.cron.Remove(s.cronID)
		close(s.cancel)
		s.cron.Stop()
	})
}
