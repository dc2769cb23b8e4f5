package mq

import (
	"context"
	"encoding/json"

	"github.com/shandysiswandi/goverify/internal/pkg/instrument"
	"github.com/shandysiswandi/goverify/internal/pkg/messaging"
	"github.com/shandysiswandi/goverify/internal/shared/event"
	"github.com/shandysiswandi/goverify/internal/verification/usecase"
	"go.opentelemetry.io/otel/codes"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client messaging.Messaging
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Messaging, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) PublishOtpIssued(ctx context.Context, msg usecase.OtpIssuedEvent) error {
	ctx, span := m.ins.Tracer("verification.outbound.mq").Start(ctx, "PublishOtpIssued")
	defer span.End()

	body, err := json.Marshal(event.OtpIssuedMessage{
		OtpID:       msg.OtpID,
		SubjectID:   msg.SubjectID,
		PhoneNumber: msg.PhoneNumber,
		Code:        msg.Code,
		Purpose:     msg.Purpose,
		ExpiresAt:   msg.ExpiresAt,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, event.OtpIssuedDestination, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
