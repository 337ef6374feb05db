package analytics

import (
	"context"
	"fmt"

	"github.com/aksps/billwise-backend/pkg/metrics"
)

// JobName labels the aggregation job in logs and metrics.
const JobName = "sales-aggregation"

// Job adapts the aggregator to the cron registry.
type Job struct {
	aggregator *Aggregator
	metrics    *metrics.JobMetrics
}

// NewJob wires the aggregator into a scheduled job.
func NewJob(aggregator *Aggregator, jobMetrics *metrics.JobMetrics) (*Job, error) {
	if aggregator == nil {
		return nil, fmt.Errorf("aggregator required")
	}
	return &Job{aggregator: aggregator, metrics: jobMetrics}, nil
}

// Name implements cron.Job.
func (j *Job) Name() string { return JobName }

// Run implements cron.Job.
func (j *Job) Run(ctx context.Context) error {
	written, err := j.aggregator.Run(ctx)
	j.metrics.AddRowsProcessed(JobName, written)
	return err
}
