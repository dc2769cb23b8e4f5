package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/shandysiswandi/goverify/internal/notification/entity"
	"github.com/shandysiswandi/goverify/internal/pkg/idempotency"
)

type (
	ConsumeOtpIssuedInput struct {
		OtpID       int64  `validate:"required,gt=0"`
		SubjectID   int64  `validate:"required,gt=0"`
		PhoneNumber string `validate:"required,phone"`
		Code        string `validate:"required,otpcode"`
		Purpose     string `validate:"required"`
		ExpiresAt   time.Time
	}
)

// ConsumeOtpIssued delivers a freshly issued passcode by SMS. Delivery is
// keyed by the passcode row ID, so redelivered events send at most one text.
func (s *Usecase) ConsumeOtpIssued(ctx context.Context, in ConsumeOtpIssuedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeOtpIssued")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	minutesLeft := int(in.ExpiresAt.Sub(s.clock.Now()).Minutes())
	if minutesLeft < 1 {
		minutesLeft = 1
	}

	msg := entity.SMSMessage{
		To:   in.PhoneNumber,
		Body: fmt.Sprintf("Your %s code is %s. It expires in %d minutes.", in.Purpose, in.Code, minutesLeft),
	}

	key := "otp_issued:" + strconv.FormatInt(in.OtpID, 10)
	err := s.idemp.Exec(ctx, key,
		func(ctx context.Context) error {
			return s.repoSMS.Send(ctx, msg)
		},
		idempotency.WithLockDuration(s.cfg.GetSecond("modules.notification.sms.lock_seconds")),
		idempotency.WithStateTTL(s.cfg.GetMinute("modules.notification.sms.dedupe_ttl_minutes")),
	)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, idempotency.ErrAlreadyCompleted),
		errors.Is(err, idempotency.ErrAlreadyInProgress),
		errors.Is(err, idempotency.ErrAlreadyFailed):
		slog.InfoContext(ctx, "skipping duplicate passcode delivery", "otp_id", in.OtpID, "state", err.Error())
		return nil
	default:
		slog.ErrorContext(ctx, "failed to deliver passcode sms", "otp_id", in.OtpID, "error", err)
		return err
	}
}
