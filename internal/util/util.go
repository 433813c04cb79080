// Package util provides shared helpers for turning raw flag values and files
// into request inputs. Every parse failure is an apperr.InputError.
package util

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/derickschaefer/biapi/internal/apperr"
)

// ─── Date Parsing ─────────────────────────────────────────────────────────────

const dateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into a time.Time (UTC midnight).
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, apperr.Inputf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// CheckDate validates an optional date flag. Empty is allowed.
func CheckDate(flag, s string) error {
	if s == "" {
		return nil
	}
	if _, err := ParseDate(s); err != nil {
		return apperr.WrapInput(err, "--%s", flag)
	}
	return nil
}

// ─── Booleans ─────────────────────────────────────────────────────────────────

// ParseBool accepts exactly "true" or "false".
func ParseBool(flag, s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, apperr.Inputf("--%s must be true or false, got %q", flag, s)
}

// ─── Amounts ──────────────────────────────────────────────────────────────────

// ParseAmount parses a positive decimal amount and returns it as a JSON
// number carrying the exact decimal value (no float rounding).
func ParseAmount(s string) (json.Number, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return "", apperr.Inputf("invalid amount %q: expected a decimal number", s)
	}
	if !d.IsPositive() {
		return "", apperr.Inputf("invalid amount %q: must be greater than zero", s)
	}
	return json.Number(d.String()), nil
}

// ─── Files ────────────────────────────────────────────────────────────────────

// ReadJSONFile reads path and checks that it holds a single JSON value.
func ReadJSONFile(path string) (json.RawMessage, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, apperr.WrapInput(err, "reading %s", path)
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, apperr.WrapInput(err, "parsing %s as JSON", path)
	}
	return json.RawMessage(b), nil
}

// ─── Secrets ──────────────────────────────────────────────────────────────────

// Mask keeps the first keep characters of s and replaces the rest with "***".
// Empty strings stay empty.
func Mask(s string, keep int) string {
	if s == "" {
		return ""
	}
	r := []rune(s)
	if len(r) > keep {
		r = r[:keep]
	}
	return string(r) + "***"
}

// Truncate shortens s to at most n runes, appending "..." when cut.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return fmt.Sprintf("%s...", string(r[:n]))
}
