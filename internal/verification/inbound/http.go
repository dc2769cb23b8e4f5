package inbound

import (
	"context"

	"github.com/shandysiswandi/goverify/internal/pkg/router"
	"github.com/shandysiswandi/goverify/internal/verification/usecase"
)

type uc interface {
	OtpCreate(ctx context.Context, in usecase.OtpCreateInput) error
	OtpVerify(ctx context.Context, in usecase.OtpVerifyInput) (*usecase.OtpVerifyOutput, error)
	OtpExport(ctx context.Context, in usecase.OtpExportInput) (*usecase.OtpExportOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Passcode lifecycle
	r.POST("/api/v1/verification/otp", end.OtpCreate)
	r.POST("/api/v1/verification/otp/verify", end.OtpVerify)

	// Audit
	r.GET("/api/v1/verification/otp-export", end.OtpExport)
}
