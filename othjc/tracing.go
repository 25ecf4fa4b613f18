// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package othjc

import (
	"context"

	"github.com/petenewcomb/hjc-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// TracedAuditor adds a span per merge event to an audit sink. The audit port
// is synchronous and carries no context of its own, so the span parent is the
// context captured here — typically the span covering the whole clustering
// run.
func TracedAuditor(ctx context.Context, next hjc.Auditor) hjc.Auditor {
	return hjc.AuditorFunc(func(aggregate string, constituents []string) error {
		tracer := otel.Tracer("othjc")
		_, span := tracer.Start(ctx, "hjc.record_clustering",
			trace.WithAttributes(
				attribute.String("hjc.aggregate", aggregate),
				attribute.Int("hjc.constituents", len(constituents)),
			))
		defer span.End()

		err := next.RecordClustering(aggregate, constituents)
		if err != nil {
			span.RecordError(err)
		}
		return err
	})
}
