package usecase

import (
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shandysiswandi/goverify/internal/verification/entity"
)

func exportRecord(id int64) entity.OtpRecord {
	return entity.OtpRecord{
		ID:        id,
		SubjectID: 11,
		CodeHash:  "abc",
		Purpose:   entity.PurposeVerification,
		IsUsed:    true,
		ExpiresAt: time.Date(2026, 2, 3, 4, 0, 0, 0, time.UTC),
		CreatedAt: time.Date(2026, 2, 3, 3, 50, 0, 0, time.UTC),
	}
}

func TestOtpExportSuccess(t *testing.T) {
	// Arrange
	deps := &testDeps{
		db: &fakeRepoDB{listPages: [][]entity.OtpRecord{
			{exportRecord(1), exportRecord(2)},
		}},
	}
	uc := newTestUsecase(t, deps)

	// Act
	out, err := uc.OtpExport(context.Background(), OtpExportInput{})

	// Assert
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if out.Count != 2 {
		t.Fatalf("expected 2 exported rows, got %d", out.Count)
	}
	if !strings.HasPrefix(out.ObjectKey, "otp-exports/") || !strings.HasSuffix(out.ObjectKey, ".csv") {
		t.Fatalf("unexpected object key %q", out.ObjectKey)
	}
	if !strings.Contains(out.URL, out.ObjectKey) {
		t.Fatalf("expected url to reference the object key, got %q", out.URL)
	}

	if deps.storage.bucket != "goverify-audit" {
		t.Fatalf("expected configured bucket, got %q", deps.storage.bucket)
	}
	if deps.storage.opts.ContentType != "text/csv" {
		t.Fatalf("expected csv content type, got %q", deps.storage.opts.ContentType)
	}

	rows, err := csv.NewReader(strings.NewReader(string(deps.storage.body))).ReadAll()
	if err != nil {
		t.Fatalf("exported object is not valid csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "id" || rows[0][3] != "is_used" {
		t.Fatalf("unexpected header %v", rows[0])
	}
	if rows[1][0] != "1" || rows[2][0] != "2" {
		t.Fatalf("unexpected row ids %v %v", rows[1], rows[2])
	}
	for _, row := range rows[1:] {
		for _, cell := range row {
			if strings.Contains(cell, "abc") {
				t.Fatalf("export leaked the code hash in row %v", row)
			}
		}
	}
}

func TestOtpExportFilters(t *testing.T) {
	deps := &testDeps{db: &fakeRepoDB{}}
	uc := newTestUsecase(t, deps)

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	if _, err := uc.OtpExport(context.Background(), OtpExportInput{
		Purpose:  "password_reset",
		DateFrom: from,
		DateTo:   to,
	}); err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if len(deps.db.listCalls) != 1 {
		t.Fatalf("expected one list call, got %d", len(deps.db.listCalls))
	}
	filter := deps.db.listCalls[0]
	if !filter.IsFilterByPurpose || filter.Purpose != entity.PurposePasswordReset {
		t.Fatalf("expected purpose filter, got %+v", filter)
	}
	if !filter.IsFilterByDate || !filter.DateFrom.Equal(from) || !filter.DateTo.Equal(to) {
		t.Fatalf("expected date filter, got %+v", filter)
	}
}

func TestOtpExportPagination(t *testing.T) {
	// Two full pages then a short one forces three list calls with advancing offsets.
	fullPage := make([]entity.OtpRecord, otpExportPageSize)
	for i := range fullPage {
		fullPage[i] = exportRecord(int64(i + 1))
	}

	deps := &testDeps{
		db: &fakeRepoDB{listPages: [][]entity.OtpRecord{
			fullPage, fullPage, {exportRecord(9999)},
		}},
	}
	uc := newTestUsecase(t, deps)

	out, err := uc.OtpExport(context.Background(), OtpExportInput{})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if want := int(otpExportPageSize)*2 + 1; out.Count != want {
		t.Fatalf("expected %d rows, got %d", want, out.Count)
	}
	if len(deps.db.listCalls) != 3 {
		t.Fatalf("expected 3 list calls, got %d", len(deps.db.listCalls))
	}
	if deps.db.listCalls[1].Offset != otpExportPageSize {
		t.Fatalf("expected second offset %d, got %d", otpExportPageSize, deps.db.listCalls[1].Offset)
	}
	if deps.db.listCalls[2].Offset != 2*otpExportPageSize {
		t.Fatalf("expected third offset %d, got %d", 2*otpExportPageSize, deps.db.listCalls[2].Offset)
	}
}

func TestOtpExportEmptyResultStillUploads(t *testing.T) {
	deps := &testDeps{db: &fakeRepoDB{}}
	uc := newTestUsecase(t, deps)

	out, err := uc.OtpExport(context.Background(), OtpExportInput{})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if out.Count != 0 {
		t.Fatalf("expected zero rows, got %d", out.Count)
	}
	if len(deps.storage.body) == 0 {
		t.Fatal("expected header-only csv to be uploaded")
	}
}

func TestOtpExportListFailure(t *testing.T) {
	deps := &testDeps{db: &fakeRepoDB{listErr: errors.New("db down")}}
	uc := newTestUsecase(t, deps)

	if _, err := uc.OtpExport(context.Background(), OtpExportInput{}); err == nil {
		t.Fatal("expected error when listing fails")
	}
}

func TestOtpExportUploadFailure(t *testing.T) {
	deps := &testDeps{
		db:      &fakeRepoDB{listPages: [][]entity.OtpRecord{{exportRecord(1)}}},
		storage: &fakeStorage{putErr: errors.New("storage down")},
	}
	uc := newTestUsecase(t, deps)

	if _, err := uc.OtpExport(context.Background(), OtpExportInput{}); err == nil {
		t.Fatal("expected error when upload fails")
	}
}
