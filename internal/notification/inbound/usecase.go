package inbound

import (
	"context"

	"github.com/shandysiswandi/goverify/internal/notification/usecase"
)

type uc interface {
	ConsumeOtpIssued(ctx context.Context, in usecase.ConsumeOtpIssuedInput) error
}
