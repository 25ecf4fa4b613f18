// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package othjc adds OpenTelemetry and zap instrumentation around the hjc
// audit port without requiring changes to the clustering engine itself.
package othjc

import (
	"context"

	"github.com/petenewcomb/hjc-go"
)

// InstrumentedAuditor combines tracing, metrics, and logging for an audit
// sink into a single wrapper. This provides a convenient way to apply all
// instrumentation at once.
func InstrumentedAuditor(ctx context.Context, next hjc.Auditor) hjc.Auditor {
	// Apply wrappers inside-out:
	// 1. First add logging
	logged := LoggedAuditor(next)

	// 2. Then add metrics
	metered := MetricsAuditor(logged)

	// 3. Finally add tracing
	return TracedAuditor(ctx, metered)
}
