package reconcile

import "context"

// RefreshJob runs the periodic snapshot refresh for all tracked players.
type RefreshJob struct {
	client *Client
}

// NewRefreshJob creates a new refresh job
func NewRefreshJob(client *Client) *RefreshJob {
	return &RefreshJob{client: client}
}

// Process executes one refresh cycle. Per-player failures are handled
// inside RefreshAll; a cycle itself never fails.
func (j *RefreshJob) Process(ctx context.Context) error {
	j.client.RefreshAll(ctx)
	return nil
}
