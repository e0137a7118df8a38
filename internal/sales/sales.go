// Package sales totals a sales record against a price catalogue.  Both
// inputs are JSON arrays of objects: catalogue entries carry product and
// price, sales entries carry product and quantity.  A malformed entry is
// reported through the warn callback and skipped; only whole-file problems
// are errors.
package sales

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// Header is the first line of every summary.
const Header = "===== SALES SUMMARY ====="

var (
	ErrFileNotFound = errors.New("file not found")
	ErrInvalidJSON  = errors.New("invalid JSON")
)

// Warn receives one message per skipped entry.
type Warn func(msg string)

// ReadRecords loads a JSON array from path.
func ReadRecords(path string) ([]any, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("file '%s': %w", path, ErrFileNotFound)
		}
		return nil, fmt.Errorf("file '%s': %w", path, err)
	}
	return DecodeRecords(b, path)
}

// DecodeRecords parses b as a JSON array.  name is used in errors.
func DecodeRecords(b []byte, name string) ([]any, error) {
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("file '%s' contains %w", name, ErrInvalidJSON)
	}
	items, ok := doc.([]any)
	if !ok {
		return nil, fmt.Errorf("file '%s' contains %w: top level must be an array", name, ErrInvalidJSON)
	}
	return items, nil
}

// BuildPrices indexes the catalogue by product.  A later entry for the same
// product replaces an earlier one.
func BuildPrices(catalogue []any, warn Warn) map[string]float64 {
	prices := make(map[string]float64, len(catalogue))
	for _, item := range catalogue {
		obj, ok := item.(map[string]any)
		if !ok {
			warn(fmt.Sprintf("Invalid product entry: %s", render(item)))
			continue
		}
		product, okP := productKey(obj["product"])
		price, okV := toFloat(obj["price"])
		if !okP || !okV {
			warn(fmt.Sprintf("Invalid product entry: %s", render(item)))
			continue
		}
		prices[product] = price
	}
	return prices
}

// ComputeTotal sums price*quantity over the sales record.  Unknown products
// and malformed entries are skipped.
func ComputeTotal(prices map[string]float64, record []any, warn Warn) float64 {
	total := 0.0
	for _, sale := range record {
		obj, ok := sale.(map[string]any)
		if !ok {
			warn(fmt.Sprintf("Invalid sale entry: %s", render(sale)))
			continue
		}
		product, okP := productKey(obj["product"])
		qty, okQ := toInt(obj["quantity"])
		if !okP || !okQ {
			warn(fmt.Sprintf("Invalid sale entry: %s", render(sale)))
			continue
		}
		price, known := prices[product]
		if !known {
			warn(fmt.Sprintf("Warning: Product '%s' not found in catalogue.", product))
			continue
		}
		total += price * float64(qty)
	}
	return total
}

// WriteSummary writes the three summary lines.
func WriteSummary(w io.Writer, total float64, elapsed time.Duration) error {
	_, err := fmt.Fprintf(w, "%s\nTotal Sales Amount: $%.2f\nExecution Time (seconds): %.6f\n",
		Header, total, elapsed.Seconds())
	return err
}

// Result is the outcome of Compute.
type Result struct {
	Total   float64
	Elapsed time.Duration
}

// Compute reads both files and totals them.  Elapsed covers the whole run,
// file reads included.
func Compute(cataloguePath, salesPath string, warn Warn) (Result, error) {
	start := time.Now()
	catalogue, err := ReadRecords(cataloguePath)
	if err != nil {
		return Result{}, err
	}
	record, err := ReadRecords(salesPath)
	if err != nil {
		return Result{}, err
	}
	total := ComputeTotal(BuildPrices(catalogue, warn), record, warn)
	return Result{Total: total, Elapsed: time.Since(start)}, nil
}

// productKey accepts string names and numeric names in decimal form.
func productKey(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	}
	return "", false
}

// toFloat accepts JSON numbers and numeric strings.
func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// toInt accepts JSON numbers, truncated toward zero, and integer strings.
func toInt(v any) (int64, bool) {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0, false
		}
		return int64(t), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

func render(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
