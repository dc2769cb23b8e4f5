package inbound

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/shandysiswandi/goverify/internal/notification/usecase"
	"github.com/shandysiswandi/goverify/internal/pkg/instrument"
	"github.com/shandysiswandi/goverify/internal/pkg/messaging"
	"github.com/shandysiswandi/goverify/internal/pkg/uid"
	"github.com/shandysiswandi/goverify/internal/shared/event"
)

const keyOfCorrelationID string = "cID"

type MQHandler struct {
	uc   uc
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, headers []messaging.Header) context.Context {
	for i := range headers {
		if headers[i].Key == keyOfCorrelationID {
			return instrument.SetCorrelationID(ctx, string(headers[i].Value))
		}
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

func (h *MQHandler) OtpIssuedNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "OtpIssuedNotification")
	defer span.End()

	slog.InfoContext(ctx, "consume: otp issued notification", "msg_id", msg.ID(), "topic", msg.Topic())

	var payload event.OtpIssuedMessage
	if err := json.Unmarshal(msg.Body(), &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of otp issued notification", "msg_id", msg.ID(), "error", err)
		return nil
	}

	if err := h.uc.ConsumeOtpIssued(ctx, usecase.ConsumeOtpIssuedInput{
		OtpID:       payload.OtpID,
		SubjectID:   payload.SubjectID,
		PhoneNumber: payload.PhoneNumber,
		Code:        payload.Code,
		Purpose:     payload.Purpose,
		ExpiresAt:   payload.ExpiresAt,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume otp issued", "msg_id", msg.ID(), "error", err)
		return err
	}

	return nil
}
