package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shandysiswandi/goverify/internal/pkg/goerror"
	"github.com/shandysiswandi/goverify/internal/pkg/hash"
	"github.com/shandysiswandi/goverify/internal/verification/entity"
)

func TestOtpVerifySuccess(t *testing.T) {
	// Arrange
	deps := &testDeps{
		db: &fakeRepoDB{
			subject: &entity.Subject{
				ID: 11, PhoneNumber: "+6281234567890", Status: entity.SubjectStatusActive,
			},
			consumed: &entity.OtpRecord{ID: 777, SubjectID: 11},
		},
	}
	uc := newTestUsecase(t, deps)

	// Act
	out, err := uc.OtpVerify(context.Background(), OtpVerifyInput{
		PhoneNumber: "+6281234567890",
		Code:        "123456",
		Purpose:     "password_reset",
	})

	// Assert
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if !out.Verified {
		t.Fatal("expected verified output")
	}
	if out.ProofToken != "proof-token" {
		t.Fatalf("expected proof token, got %q", out.ProofToken)
	}

	if deps.jwt.subjectID != 11 || deps.jwt.purpose != "password_reset" {
		t.Fatalf("proof token minted for wrong claims: subject=%d purpose=%q",
			deps.jwt.subjectID, deps.jwt.purpose)
	}

	if deps.db.consumeIn.SubjectID != 11 {
		t.Fatalf("expected consume for subject 11, got %d", deps.db.consumeIn.SubjectID)
	}
	if !hash.NewHMACSHA256("test-secret").Verify(deps.db.consumeIn.CodeHash, "123456") {
		t.Fatal("consume used a hash that does not match the candidate code")
	}
}

func TestOtpVerifyInvalidInputDenies(t *testing.T) {
	cases := []struct {
		name  string
		input OtpVerifyInput
	}{
		{name: "bad phone", input: OtpVerifyInput{PhoneNumber: "nope", Code: "123456"}},
		{name: "bad code", input: OtpVerifyInput{PhoneNumber: "+6281234567890", Code: "12ab56"}},
		{name: "short code", input: OtpVerifyInput{PhoneNumber: "+6281234567890", Code: "123"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			deps := &testDeps{db: &fakeRepoDB{}}
			uc := newTestUsecase(t, deps)

			out, err := uc.OtpVerify(context.Background(), tc.input)
			if err != nil {
				t.Fatalf("expected denial without error, got %v", err)
			}
			if out.Verified {
				t.Fatal("expected Verified=false")
			}
			if out.ProofToken != "" {
				t.Fatal("expected no proof token")
			}
		})
	}
}

func TestOtpVerifyUnknownSubjectDenies(t *testing.T) {
	deps := &testDeps{db: &fakeRepoDB{subjectErr: goerror.ErrNotFound}}
	uc := newTestUsecase(t, deps)

	out, err := uc.OtpVerify(context.Background(), OtpVerifyInput{
		PhoneNumber: "+6281234567890",
		Code:        "123456",
	})
	if err != nil {
		t.Fatalf("expected denial without error, got %v", err)
	}
	if out.Verified {
		t.Fatal("expected Verified=false for unknown subject")
	}
}

func TestOtpVerifyNoMatchingCodeDenies(t *testing.T) {
	deps := &testDeps{
		db: &fakeRepoDB{
			subject: &entity.Subject{
				ID: 11, PhoneNumber: "+6281234567890", Status: entity.SubjectStatusActive,
			},
			consumeErr: goerror.ErrNotFound,
		},
	}
	uc := newTestUsecase(t, deps)

	out, err := uc.OtpVerify(context.Background(), OtpVerifyInput{
		PhoneNumber: "+6281234567890",
		Code:        "123456",
	})
	if err != nil {
		t.Fatalf("expected denial without error, got %v", err)
	}
	if out.Verified {
		t.Fatal("expected Verified=false when no active code matches")
	}
}

func TestOtpVerifyInfraFailure(t *testing.T) {
	deps := &testDeps{
		db: &fakeRepoDB{
			subject: &entity.Subject{
				ID: 11, PhoneNumber: "+6281234567890", Status: entity.SubjectStatusActive,
			},
			consumeErr: errors.New("db down"),
		},
	}
	uc := newTestUsecase(t, deps)

	out, err := uc.OtpVerify(context.Background(), OtpVerifyInput{
		PhoneNumber: "+6281234567890",
		Code:        "123456",
	})
	if err == nil {
		t.Fatal("expected error on infrastructure failure")
	}
	if out != nil {
		t.Fatalf("expected nil output on failure, got %+v", out)
	}
}

func TestOtpVerifyProofTokenFailure(t *testing.T) {
	deps := &testDeps{
		db: &fakeRepoDB{
			subject: &entity.Subject{
				ID: 11, PhoneNumber: "+6281234567890", Status: entity.SubjectStatusActive,
			},
			consumed: &entity.OtpRecord{ID: 777, SubjectID: 11},
		},
		jwt: &fakeJWT{err: errors.New("signing failed")},
	}
	uc := newTestUsecase(t, deps)

	_, err := uc.OtpVerify(context.Background(), OtpVerifyInput{
		PhoneNumber: "+6281234567890",
		Code:        "123456",
	})
	if err == nil {
		t.Fatal("expected error when the proof token cannot be minted")
	}
}
