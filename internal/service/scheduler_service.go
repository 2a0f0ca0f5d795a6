package service

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"study-planner/internal/clock"
)

// SchedulerService wraps cron-based jobs running in the fixed civil zone.
type SchedulerService struct {
	cron *cron.Cron
}

func NewSchedulerService(loc *time.Location) *SchedulerService {
	return &SchedulerService{
		cron: cron.New(cron.WithLocation(loc), cron.WithSeconds()),
	}
}

// ScheduleDaily registers a daily job at the given HH:MM wall-clock time.
func (s *SchedulerService) ScheduleDaily(timeStr string, job func()) (cron.EntryID, error) {
	tod, err := clock.ParseTimeOfDay(timeStr)
	if err != nil {
		return 0, fmt.Errorf("daily job time %q: %w", timeStr, err)
	}
	// cron format: second minute hour dom month dow
	spec := fmt.Sprintf("0 %d %d * * *", tod.Minute, tod.Hour)
	return s.cron.AddFunc(spec, job)
}

func (s *SchedulerService) Start() {
	s.cron.Start()
}

func (s *SchedulerService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
