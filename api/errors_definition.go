//nolint:lll
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error satisfies the error interface and carries everything needed to
// write the HTTP response spec §6 names for a given failure: a numeric
// Code for append-only bookkeeping, the HTTPstatus to send, the
// JSON "status" string the body carries, and the wrapped cause.
//
// Error codes in the 40001-49999 range are the caller's fault and return
// HTTP 400, 404, or 409, whatever is most appropriate.
//
// Error codes 50001-59999 are the server's fault and return HTTP 500 or
// 503.
//
// NEVER change any of the current error codes, only append new errors
// after the current last 4XXX or 5XXX. If you notice there's a gap (say,
// 40010 and 40012 exist but 40011 doesn't) DON'T fill in the gap — that
// code was used in the past for an error that no longer exists.
type Error struct {
	Code       int
	HTTPstatus int
	JSONStatus string
	Err        error
}

func (e Error) Error() string {
	return e.Err.Error()
}

// WithErr returns a copy of e with its cause replaced, used to attach the
// specific failure (e.g. a *claim.FieldError) to a fixed error kind.
func (e Error) WithErr(err error) Error {
	e.Err = err
	return e
}

// Write sends e as the JSON body spec §6 defines for failed submissions
// and status lookups: {"status": ..., "error": ...}.
func (e Error) Write(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.HTTPstatus)
	body := map[string]string{"status": e.JSONStatus, "error": e.Err.Error()}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		fmt.Fprintf(w, `{"status":%q,"error":"failed to encode error body"}`, e.JSONStatus)
	}
}

var (
	ErrInvalidField           = Error{Code: 40001, HTTPstatus: http.StatusBadRequest, JSONStatus: "failed", Err: fmt.Errorf("invalid field")}
	ErrInvalidSubstrateAddr   = Error{Code: 40002, HTTPstatus: http.StatusBadRequest, JSONStatus: "failed", Err: fmt.Errorf("invalid substrate address")}
	ErrMalformedBody          = Error{Code: 40003, HTTPstatus: http.StatusBadRequest, JSONStatus: "failed", Err: fmt.Errorf("malformed JSON body")}
	ErrJobNotFound            = Error{Code: 40004, HTTPstatus: http.StatusNotFound, JSONStatus: "not_found", Err: fmt.Errorf("Job not found")}
	ErrAlreadyClaimed         = Error{Code: 40005, HTTPstatus: http.StatusConflict, JSONStatus: "failed", Err: fmt.Errorf("already claimed")}

	ErrClaimStatusUnavailable     = Error{Code: 50001, HTTPstatus: http.StatusServiceUnavailable, JSONStatus: "failed", Err: fmt.Errorf("claim status unavailable")}
	ErrGenericInternalServerError = Error{Code: 50002, HTTPstatus: http.StatusInternalServerError, JSONStatus: "failed", Err: fmt.Errorf("internal server error")}
)
