package router

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/shandysiswandi/goverify/internal/pkg/goerror"
)

// Request wraps http.Request with helpers for inbound handlers.
type Request struct {
	// Request is the underlying http.Request.
	*http.Request
}

// GetParam reads a path parameter from the request context (as stored by httprouter).
func (r *Request) GetParam(key string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(key)
}

// GetQuery returns a trimmed query string value.
func (r *Request) GetQuery(key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}

// GetQueryDate parses a query value using the given time layout. A missing
// value yields the zero time without error.
func (r *Request) GetQueryDate(key, format string) (time.Time, error) {
	queryValue := r.GetQuery(key)
	if queryValue == "" {
		return time.Time{}, nil
	}

	value, err := time.Parse(format, queryValue)
	if err != nil {
		return time.Time{}, goerror.NewInvalidFormat("Invalid query " + key)
	}

	return value, nil
}

// DecodeBody decodes the JSON body into dst.
func (r *Request) DecodeBody(dst any) error {
	if r == nil || r.Body == nil {
		return goerror.NewInvalidFormat()
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return goerror.NewInvalidFormat()
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return goerror.NewInvalidFormat()
	}

	return nil
}
