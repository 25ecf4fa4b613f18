// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package othjc

import (
	"context"
	"time"

	"github.com/petenewcomb/hjc-go"
	"go.opentelemetry.io/otel"
)

// MetricsAuditor adds metrics collection to an audit sink.
// This wrapper records counts of aggregates built and jobs replaced, the
// duration of audit recording, and any errors.
func MetricsAuditor(next hjc.Auditor) hjc.Auditor {
	return hjc.AuditorFunc(func(aggregate string, constituents []string) error {
		ctx := context.Background()
		startTime := time.Now()
		meter := otel.GetMeterProvider().Meter("othjc")

		// Create metrics
		aggregateCounter, _ := meter.Int64Counter("hjc.aggregates.count")
		replacedCounter, _ := meter.Int64Counter("hjc.jobs.replaced.count")
		auditDuration, _ := meter.Float64Histogram("hjc.audit.duration")

		// Track the merge event
		aggregateCounter.Add(ctx, 1)
		replacedCounter.Add(ctx, int64(len(constituents)))

		// Record the event
		err := next.RecordClustering(aggregate, constituents)

		// Record duration
		duration := time.Since(startTime).Seconds()
		auditDuration.Record(ctx, duration)

		// Record error if any
		if err != nil {
			errorCounter, _ := meter.Int64Counter("hjc.audit.errors")
			errorCounter.Add(ctx, 1)
		}

		return err
	})
}
