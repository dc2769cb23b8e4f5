package inbound

import (
	"time"

	"github.com/shandysiswandi/goverify/internal/pkg/goerror"
	"github.com/shandysiswandi/goverify/internal/pkg/router"
	"github.com/shandysiswandi/goverify/internal/verification/usecase"
)

// HTTPEndpoint exposes HTTP handlers for passcode issuance and verification.
type HTTPEndpoint struct {
	uc uc
}

// OtpCreate issues a new passcode for a phone number.
// @Summary Request passcode
// @Description Issues a fresh one-time passcode and dispatches it via SMS. Responds the same whether or not the phone number is registered.
// @Tags Verification
// @Accept json
// @Param request body OtpCreateRequest true "Passcode request payload"
// @Success 204 "No Content"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/verification/otp [post]
func (h *HTTPEndpoint) OtpCreate(r *router.Request) (any, error) {
	var req OtpCreateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.OtpCreate(r.Context(), usecase.OtpCreateInput{
		PhoneNumber: req.PhoneNumber,
		Purpose:     req.Purpose,
	}); err != nil {
		return nil, err
	}

	return nil, nil
}

// OtpVerify checks a passcode and returns a proof token on success.
// @Summary Verify passcode
// @Description Consumes the passcode when it matches. Any failure cause yields verified=false with a 200 response.
// @Tags Verification
// @Accept json
// @Produce json
// @Param request body OtpVerifyRequest true "Passcode verification payload"
// @Success 200 {object} router.successResponse{data=OtpVerifyResponse} "Verification result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/verification/otp/verify [post]
func (h *HTTPEndpoint) OtpVerify(r *router.Request) (any, error) {
	var req OtpVerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.OtpVerify(r.Context(), usecase.OtpVerifyInput{
		PhoneNumber: req.PhoneNumber,
		Code:        req.Code,
		Purpose:     req.Purpose,
	})
	if err != nil {
		return nil, err
	}

	return OtpVerifyResponse{
		Verified:   resp.Verified,
		ProofToken: resp.ProofToken,
	}, nil
}

// OtpExport exports inert passcode rows as a CSV object.
// @Summary Export passcode audit rows
// @Description Writes used and expired passcode records to object storage and returns a signed download link.
// @Tags Verification
// @Produce json
// @Param purpose query string false "Filter by purpose"
// @Param date_from query string false "Filter by created_at >= date_from (RFC3339)"
// @Param date_to query string false "Filter by created_at <= date_to (RFC3339)"
// @Success 200 {object} router.successResponse{data=OtpExportResponse} "Export result"
// @Failure 400 {object} router.errorResponse "Invalid query parameters"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/verification/otp-export [get]
func (h *HTTPEndpoint) OtpExport(r *router.Request) (any, error) {
	dateFrom, err := r.GetQueryDate("date_from", time.RFC3339)
	if err != nil {
		return nil, err
	}

	dateTo, err := r.GetQueryDate("date_to", time.RFC3339)
	if err != nil {
		return nil, err
	}

	if !dateFrom.IsZero() && !dateTo.IsZero() && dateFrom.After(dateTo) {
		return nil, goerror.NewInvalidFormat("date_from must be before date_to")
	}

	resp, err := h.uc.OtpExport(r.Context(), usecase.OtpExportInput{
		Purpose:  r.GetQuery("purpose"),
		DateFrom: dateFrom,
		DateTo:   dateTo,
	})
	if err != nil {
		return nil, err
	}

	return OtpExportResponse{
		ObjectKey: resp.ObjectKey,
		URL:       resp.URL,
		Count:     resp.Count,
	}, nil
}
