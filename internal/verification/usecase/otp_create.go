package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/goverify/internal/pkg/goerror"
	"github.com/shandysiswandi/goverify/internal/verification/entity"
)

type OtpCreateInput struct {
	PhoneNumber string `validate:"required,phone"`
	Purpose     string
}

// OtpCreate issues a fresh passcode for the subject behind the phone number.
// It never reveals whether the subject exists: unknown or banned subjects
// produce the same nil result as a successful issue.
func (s *Usecase) OtpCreate(ctx context.Context, in OtpCreateInput) error {
	ctx, span := s.startSpan(ctx, "OtpCreate")
	defer span.End()

	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	purpose := entity.PurposeFromString(strings.TrimSpace(in.Purpose))

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	subject, err := s.repoDB.GetSubjectByPhone(ctx, in.PhoneNumber)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "passcode requested for unavailable subject", "phone_number", in.PhoneNumber)
		return nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get subject by phone", "error", err)
		return goerror.NewServer(err)
	}

	if subject.Status != entity.SubjectStatusActive {
		slog.WarnContext(ctx, "passcode requested for ineligible subject",
			"subject_id", subject.ID, "status", subject.Status.String())
		return nil
	}

	code, err := s.codeGen.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate passcode", "subject_id", subject.ID, "error", err)
		return goerror.NewServer(err)
	}

	digest, err := s.hmac.Hash(code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash passcode", "subject_id", subject.ID, "error", err)
		return goerror.NewServer(err)
	}

	rec := entity.OtpRecord{
		ID:        s.uid.Generate(),
		SubjectID: subject.ID,
		CodeHash:  string(digest),
		Purpose:   purpose,
		ExpiresAt: s.clock.Now().Add(s.cfg.GetMinute("modules.verification.otp_ttl_minutes")),
		CreatedAt: s.clock.Now(),
	}
	if err := s.repoDB.ReplaceActiveOtp(ctx, rec); err != nil {
		slog.ErrorContext(ctx, "failed to repo replace active passcode", "subject_id", subject.ID, "error", err)
		return goerror.NewServer(err)
	}

	if s.issuedCounter != nil {
		s.issuedCounter.Add(ctx, 1)
	}

	if err := s.repoMessaging.PublishOtpIssued(ctx, OtpIssuedEvent{
		OtpID:       rec.ID,
		SubjectID:   subject.ID,
		PhoneNumber: subject.PhoneNumber,
		Code:        code,
		Purpose:     purpose.String(),
		ExpiresAt:   rec.ExpiresAt,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish otp issued", "subject_id", subject.ID, "error", err)
	}

	return nil
}
