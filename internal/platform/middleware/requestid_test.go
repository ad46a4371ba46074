package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

func TestRequestIDGeneratesUUID(t *testing.T) {
	var seen string
	handler := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = chimiddleware.GetReqID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if _, err := uuid.Parse(seen); err != nil {
		t.Errorf("expected UUID request ID, got %q: %v", seen, err)
	}
	if got := resp.Header().Get(chimiddleware.RequestIDHeader); got != seen {
		t.Errorf("response header %q does not match context value %q", got, seen)
	}
}

func TestRequestIDReusesValidHeader(t *testing.T) {
	var seen string
	handler := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = chimiddleware.GetReqID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(chimiddleware.RequestIDHeader, "client-supplied-id")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if seen != "client-supplied-id" {
		t.Errorf("expected client ID to be reused, got %q", seen)
	}
}

func TestRequestIDRejectsInvalidHeader(t *testing.T) {
	cases := []struct {
		name string
		id   string
	}{
		{"newline", "abc\ndef"},
		{"control character", "abc\x01def"},
		{"too long", strings.Repeat("x", 200)},
		{"high bytes", "abc\xffdef"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var seen string
			handler := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = chimiddleware.GetReqID(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(chimiddleware.RequestIDHeader, tc.id)
			resp := httptest.NewRecorder()
			handler.ServeHTTP(resp, req)

			if seen == tc.id {
				t.Errorf("invalid ID %q should have been replaced", tc.id)
			}
			if _, err := uuid.Parse(seen); err != nil {
				t.Errorf("expected generated UUID, got %q", seen)
			}
		})
	}
}
