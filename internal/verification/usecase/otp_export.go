package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"log/slog"
	"strconv"
	"time"

	"github.com/samber/lo"
	"github.com/shandysiswandi/goverify/internal/pkg/goerror"
	"github.com/shandysiswandi/goverify/internal/pkg/storage"
	"github.com/shandysiswandi/goverify/internal/verification/entity"
)

const otpExportPageSize int32 = 1_000

var otpExportHeader = []string{"id", "subject_id", "purpose", "is_used", "expires_at", "created_at"}

type (
	OtpExportInput struct {
		Purpose  string
		DateFrom time.Time
		DateTo   time.Time
	}

	OtpExportOutput struct {
		ObjectKey string
		URL       string
		Count     int
	}
)

// OtpExport writes inert (used or expired) passcode rows as a CSV object and
// returns a time-limited download link. Only hashed codes are stored, so the
// export carries no secrets.
func (s *Usecase) OtpExport(ctx context.Context, in OtpExportInput) (*OtpExportOutput, error) {
	ctx, span := s.startSpan(ctx, "OtpExport")
	defer span.End()

	filterData := entity.OtpListFilterData{
		Purpose:  entity.Purpose(in.Purpose),
		DateFrom: in.DateFrom,
		DateTo:   in.DateTo,
		Now:      s.clock.Now(),
		Size:     otpExportPageSize,
	}
	if in.Purpose != "" {
		filterData.IsFilterByPurpose = true
	}
	if !in.DateFrom.IsZero() || !in.DateTo.IsZero() {
		filterData.IsFilterByDate = true
	}

	var records []entity.OtpRecord
	for {
		page, err := s.repoDB.ListInertOtps(ctx, filterData)
		if err != nil {
			slog.ErrorContext(ctx, "failed to repo list inert passcodes", "error", err)
			return nil, goerror.NewServer(err)
		}

		records = append(records, page...)

		if int32(len(page)) < otpExportPageSize {
			break
		}
		filterData.Offset += otpExportPageSize
	}

	rows := lo.Map(records, func(rec entity.OtpRecord, _ int) []string {
		return []string{
			strconv.FormatInt(rec.ID, 10),
			strconv.FormatInt(rec.SubjectID, 10),
			rec.Purpose.String(),
			strconv.FormatBool(rec.IsUsed),
			rec.ExpiresAt.UTC().Format(time.RFC3339),
			rec.CreatedAt.UTC().Format(time.RFC3339),
		}
	})

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(append([][]string{otpExportHeader}, rows...)); err != nil {
		slog.ErrorContext(ctx, "failed to encode export csv", "error", err)
		return nil, goerror.NewServer(err)
	}

	bucket := s.cfg.GetString("modules.verification.export.bucket")
	key := "otp-exports/" + s.clock.Now().UTC().Format("20060102T150405Z") + "_" + s.uuid.Generate() + ".csv"

	putOpts := storage.PutOptions{
		Size:        int64(buf.Len()),
		ContentType: "text/csv",
	}
	if _, err := s.storage.PutObject(ctx, bucket, key, bytes.NewReader(buf.Bytes()), putOpts); err != nil {
		slog.ErrorContext(ctx, "failed to store export object", "bucket", bucket, "key", key, "error", err)
		return nil, goerror.NewServer(err)
	}

	url, err := s.storage.PresignGet(ctx, bucket, key, s.cfg.GetMinute("modules.verification.export.url_ttl_minutes"))
	if err != nil {
		slog.ErrorContext(ctx, "failed to presign export object", "bucket", bucket, "key", key, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &OtpExportOutput{
		ObjectKey: key,
		URL:       url,
		Count:     len(records),
	}, nil
}
