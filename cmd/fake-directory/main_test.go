package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"rep-lookup/internal/representative"

	"github.com/charmbracelet/log"
)

func TestHandler(t *testing.T) {
	h := newHandler(fixtures, 0, log.New(io.Discard))

	cases := []struct {
		path string
		want int
	}{
		{"/postcodes/K1A0A6/", http.StatusOK},
		{"/postcodes/k1a0a6/", http.StatusOK},
		{"/postcodes/A1A1A1/", http.StatusNotFound},
		{"/postcodes/ZZZ/", http.StatusBadRequest},
	}
	for _, tc := range cases {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tc.path, nil))
		if rr.Code != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.path, tc.want, rr.Code)
		}
	}
}

func TestHandler_FederalFixtureIsSelectable(t *testing.T) {
	h := newHandler(fixtures, 0, log.New(io.Discard))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/postcodes/K1A0A6/", nil))

	var resp representative.Response
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	rec, err := representative.SelectTarget(&resp, representative.Federal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Name != "Daniel Okafor" {
		t.Fatalf("expected Daniel Okafor, got %q", rec.Name)
	}
}
