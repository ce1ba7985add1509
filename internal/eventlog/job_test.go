package eventlog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanupJobProcess(t *testing.T) {
	repo := NewMockRepository()
	svc := NewService(repo)
	svc.Record(context.Background(), "p1", "converted", nil)

	job := NewCleanupJob(svc, 90)
	require.NoError(t, job.Process(context.Background()))
	assert.Empty(t, repo.Records)
}

func TestCleanupJobPropagatesError(t *testing.T) {
	repo := NewMockRepository()
	repo.Err = errors.New("db down")
	job := NewCleanupJob(NewService(repo), 90)

	assert.Error(t, job.Process(context.Background()))
}
