// Package currencyutils formats and parses rupee amounts.
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// RupeeSymbol prefixes formatted amounts.
const RupeeSymbol = "₹"

var currencyNoise = regexp.MustCompile(`[₹\s]|INR|Rs\.?`)

// ParseAmount parses an amount as written in exported ledgers: optional
// rupee prefix, comma grouping in either western or Indian style, optional
// sign. The empty string is zero.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	cleaned := StandardizeAmount(amountStr)
	if cleaned == "" {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	return amount, nil
}

// StandardizeAmount strips the currency marker, whitespace and grouping
// commas so the result can be read by decimal.NewFromString.
func StandardizeAmount(amountStr string) string {
	amountStr = currencyNoise.ReplaceAllString(amountStr, "")
	return strings.ReplaceAll(amountStr, ",", "")
}

// FormatAmount renders amount with exactly two decimals and no grouping.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// FormatRupees renders amount as "₹1,23,456.78": the last three integer
// digits form one group and the rest are grouped in pairs.
func FormatRupees(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	fixed := amount.StringFixed(2)
	intPart, frac := fixed[:len(fixed)-3], fixed[len(fixed)-2:]
	return sign + RupeeSymbol + GroupIndian(intPart) + "." + frac
}

// GroupIndian inserts lakh/crore commas into a string of digits.
func GroupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(groups, ",") + "," + tail
}
