package worker

import (
	"sync"

	"github.com/robfig/cron/v3"
)

// IJob job的接口
type IJob interface {
	Start() error
	Run()
	Stop() error
}

type OnWork func() error

// BaseJob cron driven job, a run is skipped while the previous one is still working
type BaseJob struct {
	Cron   *cron.Cron
	OnWork OnWork

	mu sync.Mutex
}

func (job *BaseJob) Start() error {
	job.Cron.Start()
	return nil
}

func (job *BaseJob) Stop() error {
	<-job.Cron.Stop().Done()
	return nil
}

func (job *BaseJob) Run() {
	if !job.mu.TryLock() {
		return
	}
	defer job.mu.Unlock()

	job.OnWork()
}
