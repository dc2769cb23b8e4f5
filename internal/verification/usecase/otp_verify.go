package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/goverify/internal/pkg/goerror"
	"github.com/shandysiswandi/goverify/internal/verification/entity"
)

type (
	OtpVerifyInput struct {
		PhoneNumber string `validate:"required,phone"`
		Code        string `validate:"required,otpcode"`
		Purpose     string
	}

	OtpVerifyOutput struct {
		Verified   bool
		ProofToken string
	}
)

// OtpVerify checks a candidate code and consumes it on a match. Every failure
// cause collapses into Verified=false so the response never leaks whether the
// subject exists, a code was issued, or the candidate was merely stale.
func (s *Usecase) OtpVerify(ctx context.Context, in OtpVerifyInput) (*OtpVerifyOutput, error) {
	ctx, span := s.startSpan(ctx, "OtpVerify")
	defer span.End()

	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	in.Code = strings.TrimSpace(in.Code)
	purpose := entity.PurposeFromString(strings.TrimSpace(in.Purpose))

	if err := s.validator.Validate(in); err != nil {
		slog.WarnContext(ctx, "passcode verify rejected by validation", "error", err)
		s.countVerify(ctx, "denied")
		return &OtpVerifyOutput{Verified: false}, nil
	}

	subject, err := s.repoDB.GetSubjectByPhone(ctx, in.PhoneNumber)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "passcode verify for unavailable subject", "phone_number", in.PhoneNumber)
		s.countVerify(ctx, "denied")
		return &OtpVerifyOutput{Verified: false}, nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get subject by phone", "error", err)
		return nil, goerror.NewServer(err)
	}

	digest, err := s.hmac.Hash(in.Code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash passcode candidate", "subject_id", subject.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	_, err = s.repoDB.ConsumeActiveOtp(ctx, entity.ConsumeOtp{
		SubjectID: subject.ID,
		CodeHash:  string(digest),
		Purpose:   purpose,
		Now:       s.clock.Now(),
	})
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "passcode verify denied", "subject_id", subject.ID, "purpose", purpose.String())
		s.countVerify(ctx, "denied")
		return &OtpVerifyOutput{Verified: false}, nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo consume active passcode", "subject_id", subject.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	token, err := s.jwt.Generate(subject.ID, purpose.String())
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate proof token", "subject_id", subject.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	s.countVerify(ctx, "verified")

	return &OtpVerifyOutput{
		Verified:   true,
		ProofToken: token,
	}, nil
}
