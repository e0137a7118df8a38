package sales

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func decode(t *testing.T, s string) []any {
	t.Helper()
	items, err := DecodeRecords([]byte(s), "inline")
	if err != nil {
		t.Fatalf("DecodeRecords: %v", err)
	}
	return items
}

func TestComputeTotal(t *testing.T) {
	catalogue := decode(t, `[
		{"product": "Apple", "price": 1.25},
		{"product": "Bread", "price": "2.50"},
		{"product": "Broken"},
		"not an object",
		{"product": "Milk", "price": 0.99}
	]`)
	record := decode(t, `[
		{"product": "Apple", "quantity": 4},
		{"product": "Bread", "quantity": "2"},
		{"product": "Milk", "quantity": 2.9},
		{"product": "Ghost", "quantity": 1},
		{"product": "Apple"},
		{"product": "Apple", "quantity": "lots"}
	]`)

	var warnings []string
	warn := func(m string) { warnings = append(warnings, m) }
	total := ComputeTotal(BuildPrices(catalogue, warn), record, warn)

	want := 1.25*4 + 2.50*2 + 0.99*2
	if math.Abs(total-want) > 1e-9 {
		t.Fatalf("total = %v, want %v", total, want)
	}
	if len(warnings) != 5 {
		t.Fatalf("expected 5 warnings, got %d: %v", len(warnings), warnings)
	}
	if !strings.Contains(strings.Join(warnings, "\n"), "Product 'Ghost' not found") {
		t.Fatalf("missing unknown-product warning: %v", warnings)
	}
}

func TestDecodeRecords_Errors(t *testing.T) {
	for _, body := range []string{"{", `{"product": "x"}`, `"text"`} {
		if _, err := DecodeRecords([]byte(body), "f.json"); !errors.Is(err, ErrInvalidJSON) {
			t.Errorf("%q: expected ErrInvalidJSON, got %v", body, err)
		}
	}
}

func TestReadRecords_Missing(t *testing.T) {
	_, err := ReadRecords(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound, got %v", err)
	}
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSummary(&buf, 2481.86, 1500*time.Microsecond); err != nil {
		t.Fatal(err)
	}
	want := "===== SALES SUMMARY =====\nTotal Sales Amount: $2481.86\nExecution Time (seconds): 0.001500\n"
	if buf.String() != want {
		t.Fatalf("unexpected summary:\n%q", buf.String())
	}
}

func TestCompute(t *testing.T) {
	dir := t.TempDir()
	cat := filepath.Join(dir, "catalogue.json")
	sal := filepath.Join(dir, "sales.json")
	if err := os.WriteFile(cat, []byte(`[{"product":"A","price":10}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(sal, []byte(`[{"product":"A","quantity":3}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	res, err := Compute(cat, sal, func(string) {})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if res.Total != 30 || res.Elapsed <= 0 {
		t.Fatalf("unexpected result %+v", res)
	}
}
