package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/itmlabs/itmview/internal/config"
	"github.com/itmlabs/itmview/internal/shortinterest"
	"github.com/itmlabs/itmview/internal/store"
	"github.com/itmlabs/itmview/internal/view"
)

const testReport = `FINAL QUALIFYING TICKERS WITH CURRENT PRICES:
=============================================
AAPL: Current Price $150.00, 2 ITM puts, Total Premium $5,000.00

CALL ACTIVITY ANALYSIS:
=======================
AAPL (Current Price $150.00):
  Heavy call buying at the 160 strike.

DETAILED PUT BREAKDOWN BY TICKER:
=================================
AAPL (Current Price $150.00):
  Put #1: Strike $155.00, Spot $150.00, ITM by $5.00, Premium $2,000.00, Exp: 2025-09-19
  Put #2: Strike $160.00, Spot $150.00, ITM by $10.00, Premium $3,000.00, Exp: 2025-10-17

ANALYSIS METADATA:
`

func newTestHandler(t *testing.T, uploadInterval time.Duration) (http.Handler, *store.Store) {
	t.Helper()
	logger := zap.NewNop()
	cfg := &config.ServerConfig{
		Port:           "0",
		MaxReportBytes: 1 << 20,
		UploadInterval: uploadInterval,
	}
	st := store.New(logger)
	srv := NewServer(st, view.NewBuilder(shortinterest.Set{"AAPL": {}}), cfg, logger)
	return NewRouter(srv, logger), st
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestNoReportYieldsServiceUnavailable(t *testing.T) {
	h, _ := newTestHandler(t, time.Millisecond)

	rec := doRequest(t, h, "GET", "/expirations", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["error"] == "" {
		t.Error("expected a user-visible status message")
	}
}

func TestHealthReportsSnapshotState(t *testing.T) {
	h, st := newTestHandler(t, time.Millisecond)

	rec := doRequest(t, h, "GET", "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]interface{}
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["status"] != "no_report" {
		t.Errorf("expected no_report status, got %v", resp["status"])
	}

	st.Replace(testReport, "test")
	rec = doRequest(t, h, "GET", "/health", "")
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["status"] != "ok" || resp["snapshot_id"] == nil {
		t.Errorf("expected ok status with snapshot id, got %v", resp)
	}
}

func TestUploadThenQuery(t *testing.T) {
	h, _ := newTestHandler(t, time.Millisecond)

	rec := doRequest(t, h, "POST", "/report?filename=report.txt", testReport)
	if rec.Code != http.StatusOK {
		t.Fatalf("upload failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, h, "GET", "/expirations", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var expResp struct {
		Expirations []string `json:"expirations"`
		Count       int      `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &expResp); err != nil {
		t.Fatal(err)
	}
	if expResp.Count != 2 || expResp.Expirations[0] != "2025-09-19" {
		t.Errorf("unexpected expirations: %+v", expResp)
	}

	rec = doRequest(t, h, "GET", "/tickers", "")
	var tickResp struct {
		Tickers []view.TickerOption `json:"tickers"`
		Count   int                 `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &tickResp); err != nil {
		t.Fatal(err)
	}
	if tickResp.Count != 1 || tickResp.Tickers[0].Key != "AAPL" {
		t.Fatalf("unexpected tickers: %+v", tickResp)
	}
	if !tickResp.Tickers[0].HighShortInterest {
		t.Error("short-interest flag not applied")
	}
}

func TestPutsFilteredByExpiration(t *testing.T) {
	h, st := newTestHandler(t, time.Millisecond)
	st.Replace(testReport, "test")

	rec := doRequest(t, h, "GET", "/tickers/AAPL/puts?exp=2025-10-17", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var detail view.TickerDetail
	if err := json.Unmarshal(rec.Body.Bytes(), &detail); err != nil {
		t.Fatal(err)
	}
	if detail.NumPuts != 1 || detail.TotalPremium != 3000 {
		t.Errorf("aggregates not recomputed: %+v", detail)
	}
	if len(detail.Puts) != 1 || detail.Puts[0].Expiration != "2025-10-17" {
		t.Errorf("puts not filtered: %+v", detail.Puts)
	}
}

func TestUnknownTickerKey(t *testing.T) {
	h, st := newTestHandler(t, time.Millisecond)
	st.Replace(testReport, "test")

	rec := doRequest(t, h, "GET", "/tickers/MSFT/puts", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}

	// AAPL exists only in the normal category here.
	rec = doRequest(t, h, "GET", "/tickers/earnings_AAPL/puts", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unmatched earnings key, got %d", rec.Code)
	}
}

func TestCallsUnfiltered(t *testing.T) {
	h, st := newTestHandler(t, time.Millisecond)
	st.Replace(testReport, "test")

	rec := doRequest(t, h, "GET", "/tickers/AAPL/calls", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["narrative"] != "Heavy call buying at the 160 strike." {
		t.Errorf("unexpected narrative: %q", resp["narrative"])
	}
}

func TestUploadRejectsEmptyBody(t *testing.T) {
	h, _ := newTestHandler(t, time.Millisecond)

	rec := doRequest(t, h, "POST", "/report", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for an empty body, got %d", rec.Code)
	}
}

func TestUploadRateLimited(t *testing.T) {
	h, _ := newTestHandler(t, time.Hour)

	rec := doRequest(t, h, "POST", "/report", testReport)
	if rec.Code != http.StatusOK {
		t.Fatalf("first upload failed: %d", rec.Code)
	}
	rec = doRequest(t, h, "POST", "/report", testReport)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429 for a second rapid upload, got %d", rec.Code)
	}
}
