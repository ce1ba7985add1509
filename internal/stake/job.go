package stake

import "context"

// RefreshJob drives the maturation countdown sweep.
type RefreshJob struct {
	service Service
}

// NewRefreshJob creates a new stake refresh job
func NewRefreshJob(service Service) *RefreshJob {
	return &RefreshJob{service: service}
}

// Process executes one countdown sweep.
func (j *RefreshJob) Process(ctx context.Context) error {
	j.service.RefreshTick(ctx)
	return nil
}
