package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"
)

const testReport = `FINAL QUALIFYING TICKERS WITH CURRENT PRICES:
=============================================
AAPL: Current Price $150.00, 1 ITM puts, Total Premium $2,000.00

CALL ACTIVITY ANALYSIS:
=======================
AAPL (Current Price $150.00):
  Call flow steady.

DETAILED PUT BREAKDOWN BY TICKER:
=================================
AAPL (Current Price $150.00):
  Put #1: Strike $155.00, Spot $150.00, ITM by $5.00, Premium $2,000.00, Exp: 2025-09-19

ANALYSIS METADATA:
`

func TestCurrentWithoutReport(t *testing.T) {
	s := New(zap.NewNop())

	if _, err := s.Current(); !errors.Is(err, ErrNoReport) {
		t.Errorf("expected ErrNoReport, got %v", err)
	}
}

func TestReplaceInstallsSnapshot(t *testing.T) {
	s := New(zap.NewNop())

	first := s.Replace(testReport, "upload")
	snap, err := s.Current()
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if snap.ID != first.ID {
		t.Error("Current returned a different snapshot than Replace installed")
	}
	if snap.Origin != "upload" {
		t.Errorf("unexpected origin: %s", snap.Origin)
	}
	if len(snap.Analysis.Normal.Tickers) != 1 {
		t.Errorf("report not parsed into snapshot: %+v", snap.Analysis.Normal.Tickers)
	}

	// A second upload fully replaces the first.
	second := s.Replace("nothing parseable", "upload2")
	snap, _ = s.Current()
	if snap.ID != second.ID {
		t.Error("replacement snapshot not installed")
	}
	if len(snap.Analysis.Normal.Tickers) != 0 {
		t.Error("records from the previous snapshot leaked into the new one")
	}
}

func TestLoadDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	if err := os.WriteFile(path, []byte(testReport), 0644); err != nil {
		t.Fatal(err)
	}

	s := New(zap.NewNop())
	if err := s.LoadDefault(path, 1<<20); err != nil {
		t.Fatalf("LoadDefault failed: %v", err)
	}

	snap, err := s.Current()
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if snap.Origin != "default" {
		t.Errorf("expected default origin, got %s", snap.Origin)
	}
}

func TestLoadDefaultMissingFileIsNonFatal(t *testing.T) {
	s := New(zap.NewNop())

	if err := s.LoadDefault(filepath.Join(t.TempDir(), "absent.txt"), 1<<20); err != nil {
		t.Fatalf("missing default file must not fail startup: %v", err)
	}
	if _, err := s.Current(); !errors.Is(err, ErrNoReport) {
		t.Error("store must stay empty when the default file is missing")
	}
}

func TestReadReportFileGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt.gz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	gz := gzip.NewWriter(f)
	if _, err := gz.Write([]byte(testReport)); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	text, err := ReadReportFile(path, 1<<20)
	if err != nil {
		t.Fatalf("ReadReportFile failed: %v", err)
	}
	if text != testReport {
		t.Error("gzip round trip mismatch")
	}
}

func TestReadReportFileSizeLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	if err := os.WriteFile(path, []byte(testReport), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadReportFile(path, 10); err == nil {
		t.Error("expected an error for a report over the size limit")
	}
}
