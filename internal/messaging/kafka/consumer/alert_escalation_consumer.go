package consumer

import (
	"context"
	"encoding/json"
	"errors"

	"go-presence/internal/alert"
	alerterrors "go-presence/internal/alert/errors"
	"go-presence/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeAlertRaised escalates high severity alerts as they come off the
// raised topic so supervisors see them flagged without polling.
func ConsumeAlertRaised(
	ctx context.Context,
	reader *kafkago.Reader,
	alertService alert.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.alert_raised")
	log.Info("alert raised consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("alert raised consumer stopped")
				return
			}
			log.Error("fetch alert raised message failed", zap.Error(err))
			continue
		}

		var event events.AlertRaisedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode alert_raised event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if event.Severity != string(alert.SeverityHigh) {
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		_, err = alertService.Escalate(ctx, event.AlertID)
		if err != nil {
			// A redelivered event hits an already escalated alert
			if errors.Is(err, alerterrors.ErrInvalidStatusTransition) {
				log.Warn("alert already escalated, skipping",
					zap.String("alert_id", event.AlertID),
				)
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			log.Error("escalate alert failed",
				zap.String("alert_id", event.AlertID),
				zap.String("employee_id", event.EmployeeID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit alert raised message failed", zap.Error(err))
			continue
		}

		log.Info("high severity alert escalated",
			zap.String("alert_id", event.AlertID),
			zap.String("employee_id", event.EmployeeID),
			zap.String("alert_type", event.AlertType),
		)
	}
}
