// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package othjc

import (
	"time"

	"github.com/petenewcomb/hjc-go"
	"go.uber.org/zap"
)

// LoggedAuditor adds structured logging to an audit sink.
// This wrapper logs each merge event as it is recorded, including timing
// information and any errors that occur.
func LoggedAuditor(next hjc.Auditor) hjc.Auditor {
	return hjc.AuditorFunc(func(aggregate string, constituents []string) error {
		// Get logger from the process-wide registry or use a default
		// This implementation uses zap, but could be adapted for any logger
		logger := zap.L()

		logger.Debug("Recording merge event",
			zap.String("aggregate", aggregate),
			zap.Int("constituents", len(constituents)),
			zap.String("component", "othjc"))

		// Time the operation
		startTime := time.Now()
		err := next.RecordClustering(aggregate, constituents)
		duration := time.Since(startTime)

		// Log completion with appropriate level based on success/failure
		if err != nil {
			logger.Error("Merge event recording failed",
				zap.String("aggregate", aggregate),
				zap.String("component", "othjc"),
				zap.Duration("duration", duration),
				zap.Error(err))
		} else {
			logger.Debug("Merge event recorded",
				zap.String("aggregate", aggregate),
				zap.String("component", "othjc"),
				zap.Duration("duration", duration))
		}

		return err
	})
}
