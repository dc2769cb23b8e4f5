package inbound

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shandysiswandi/goverify/internal/pkg/config"
	"github.com/shandysiswandi/goverify/internal/pkg/instrument"
	"github.com/shandysiswandi/goverify/internal/pkg/router"
	"github.com/shandysiswandi/goverify/internal/verification/usecase"
)

type fakeUsecase struct {
	createIn  usecase.OtpCreateInput
	createErr error

	verifyIn  usecase.OtpVerifyInput
	verifyOut *usecase.OtpVerifyOutput
	verifyErr error

	exportIn  usecase.OtpExportInput
	exportOut *usecase.OtpExportOutput
	exportErr error
}

func (f *fakeUsecase) OtpCreate(_ context.Context, in usecase.OtpCreateInput) error {
	f.createIn = in
	return f.createErr
}

func (f *fakeUsecase) OtpVerify(_ context.Context, in usecase.OtpVerifyInput) (*usecase.OtpVerifyOutput, error) {
	f.verifyIn = in
	return f.verifyOut, f.verifyErr
}

func (f *fakeUsecase) OtpExport(_ context.Context, in usecase.OtpExportInput) (*usecase.OtpExportOutput, error) {
	f.exportIn = in
	return f.exportOut, f.exportErr
}

type staticUUID struct{}

func (staticUUID) Generate() string { return "req-uuid" }

func newTestServer(t *testing.T, uc *fakeUsecase) *httptest.Server {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte("app:\n  maintenance:\n    endpoints: \"\"\n"))
	if err != nil {
		t.Fatalf("new config: %v", err)
	}

	rtr := router.NewRouter(router.Config{
		Config:     cfg,
		UUID:       staticUUID{},
		Instrument: instrument.NewNoop(),
	})
	RegisterHTTPEndpoint(rtr, uc)

	srv := httptest.NewServer(rtr)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, srv *httptest.Server, method, path string, payload any) (int, []byte) {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		body = &bytes.Buffer{}
		if err := json.NewEncoder(body).Encode(payload); err != nil {
			t.Fatalf("encode payload: %v", err)
		}
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, srv.URL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatalf("read response: %v", err)
	}
	return resp.StatusCode, buf.Bytes()
}

func TestHTTPOtpCreate(t *testing.T) {
	uc := &fakeUsecase{}
	srv := newTestServer(t, uc)

	status, _ := doJSON(t, srv, http.MethodPost, "/api/v1/verification/otp", map[string]string{
		"phone_number": "+6281234567890",
		"purpose":      "verification",
	})

	if status != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", status)
	}
	if uc.createIn.PhoneNumber != "+6281234567890" || uc.createIn.Purpose != "verification" {
		t.Fatalf("unexpected input %+v", uc.createIn)
	}
}

func TestHTTPOtpCreateMalformedBody(t *testing.T) {
	uc := &fakeUsecase{}
	srv := newTestServer(t, uc)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/v1/verification/otp",
		bytes.NewBufferString("not-json"))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestHTTPOtpVerify(t *testing.T) {
	uc := &fakeUsecase{verifyOut: &usecase.OtpVerifyOutput{Verified: true, ProofToken: "proof-token"}}
	srv := newTestServer(t, uc)

	status, body := doJSON(t, srv, http.MethodPost, "/api/v1/verification/otp/verify", map[string]string{
		"phone_number": "+6281234567890",
		"code":         "123456",
	})

	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}

	var envelope struct {
		Data OtpVerifyResponse `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !envelope.Data.Verified || envelope.Data.ProofToken != "proof-token" {
		t.Fatalf("unexpected response %+v", envelope.Data)
	}
}

func TestHTTPOtpVerifyDenied(t *testing.T) {
	uc := &fakeUsecase{verifyOut: &usecase.OtpVerifyOutput{Verified: false}}
	srv := newTestServer(t, uc)

	status, body := doJSON(t, srv, http.MethodPost, "/api/v1/verification/otp/verify", map[string]string{
		"phone_number": "+6281234567890",
		"code":         "000000",
	})

	if status != http.StatusOK {
		t.Fatalf("denials must still be 200, got %d", status)
	}

	var envelope struct {
		Data OtpVerifyResponse `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Verified || envelope.Data.ProofToken != "" {
		t.Fatalf("unexpected response %+v", envelope.Data)
	}
}

func TestHTTPOtpExport(t *testing.T) {
	uc := &fakeUsecase{exportOut: &usecase.OtpExportOutput{
		ObjectKey: "otp-exports/x.csv",
		URL:       "https://storage.local/otp-exports/x.csv",
		Count:     7,
	}}
	srv := newTestServer(t, uc)

	status, body := doJSON(t, srv, http.MethodGet,
		"/api/v1/verification/otp-export?purpose=verification&date_from=2026-01-01T00:00:00Z&date_to=2026-02-01T00:00:00Z", nil)

	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}

	var envelope struct {
		Data OtpExportResponse `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Count != 7 || envelope.Data.ObjectKey != "otp-exports/x.csv" {
		t.Fatalf("unexpected response %+v", envelope.Data)
	}

	if uc.exportIn.Purpose != "verification" {
		t.Fatalf("expected purpose filter, got %q", uc.exportIn.Purpose)
	}
	want := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if !uc.exportIn.DateFrom.Equal(want) {
		t.Fatalf("expected date_from %v, got %v", want, uc.exportIn.DateFrom)
	}
}

func TestHTTPOtpExportRejectsBadDates(t *testing.T) {
	uc := &fakeUsecase{}
	srv := newTestServer(t, uc)

	status, _ := doJSON(t, srv, http.MethodGet,
		"/api/v1/verification/otp-export?date_from=not-a-date", nil)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed date, got %d", status)
	}

	status, _ = doJSON(t, srv, http.MethodGet,
		"/api/v1/verification/otp-export?date_from=2026-02-01T00:00:00Z&date_to=2026-01-01T00:00:00Z", nil)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for inverted range, got %d", status)
	}
}
