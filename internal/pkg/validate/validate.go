// Package validate holds the client-side checks run before a request reaches the
// marketplace API. They are advisory: the API re-validates everything.
package validate

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	// DefaultMinPercent is the lowest accepted bid as a fraction of the asking price
	DefaultMinPercent = 0.70
	// DefaultMaxPercent is the highest accepted bid as a fraction of the asking price
	DefaultMaxPercent = 1.00
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// UAE mobile numbers: 05XXXXXXXX locally, +9715XXXXXXXX or 009715XXXXXXXX internationally
	phonePattern    = regexp.MustCompile(`^(?:\+971|00971|0)5\d{8}$`)
	phoneSeparators = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")
	priceSeparators = strings.NewReplacer(",", "", " ", "")
)

// Result is the outcome of a bid amount check
type Result struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// BidAmount checks a proposed bid against the listing's asking price. Both bounds are
// inclusive. Non-positive percentages fall back to the defaults. Amount format is the
// job of IsValidPrice, not this function.
func BidAmount(amount, askingPrice, minPct, maxPct float64) Result {
	if minPct <= 0 {
		minPct = DefaultMinPercent
	}
	if maxPct <= 0 {
		maxPct = DefaultMaxPercent
	}
	if !IsValidPrice(askingPrice) {
		return Result{Reason: "Listing has no valid asking price"}
	}

	minAmount := roundCents(askingPrice * minPct)
	maxAmount := roundCents(askingPrice * maxPct)

	if roundCents(amount) < minAmount {
		return Result{Reason: fmt.Sprintf(
			"Bid must be at least %s of the asking price (AED %s)",
			percent(minPct), FormatAED(minAmount),
		)}
	}
	if roundCents(amount) > maxAmount {
		return Result{Reason: fmt.Sprintf(
			"Bid cannot exceed %s of the asking price (AED %s)",
			percent(maxPct), FormatAED(maxAmount),
		)}
	}
	return Result{Valid: true}
}

// IsValidPrice reports whether v is a finite amount greater than zero
func IsValidPrice(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

// ParsePrice reads a user-typed amount such as "85,000" and checks it
func ParsePrice(s string) (float64, bool) {
	v, err := strconv.ParseFloat(priceSeparators.Replace(strings.TrimSpace(s)), 64)
	if err != nil || !IsValidPrice(v) {
		return 0, false
	}
	return v, true
}

// IsValidEmail is a shape check, not a deliverability check
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// IsValidPhone accepts UAE mobile numbers, ignoring spaces, dashes and parentheses
func IsValidPhone(phone string) bool {
	return phonePattern.MatchString(phoneSeparators.Replace(strings.TrimSpace(phone)))
}

// FormatAED renders an amount with thousands separators, dropping zero fils
func FormatAED(v float64) string {
	whole := int64(v)
	fils := int64(math.Round((v - float64(whole)) * 100))

	digits := strconv.FormatInt(whole, 10)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if fils != 0 {
		fmt.Fprintf(&b, ".%02d", fils)
	}
	return b.String()
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

func percent(p float64) string {
	return strconv.FormatFloat(math.Round(p*10000)/100, 'f', -1, 64) + "%"
}
