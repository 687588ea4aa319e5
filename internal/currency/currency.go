// Package currency maps ISO currency codes to display symbols and
// formats amounts for presentation. No conversion happens here.
package currency

import (
	"regexp"
	"sort"

	"github.com/shopspring/decimal"
)

var symbols = map[string]string{
	"USD": "$", "EUR": "€", "GBP": "£", "JPY": "¥", "CAD": "C$",
	"AUD": "A$", "CHF": "CHF", "CNY": "¥", "INR": "₹", "KRW": "₩",
	"BRL": "R$", "MXN": "$", "RUB": "₽", "ZAR": "R", "SGD": "S$",
	"HKD": "HK$", "NOK": "kr", "SEK": "kr", "DKK": "kr", "PLN": "zł",
	"CZK": "Kč", "HUF": "Ft", "ILS": "₪", "AED": "د.إ", "SAR": "﷼",
	"THB": "฿", "MYR": "RM", "PHP": "₱", "IDR": "Rp", "VND": "₫",
	"TRY": "₺", "EGP": "£", "NGN": "₦", "KES": "KSh", "GHS": "₵",
	"MAD": "د.م.", "TND": "د.ت", "DZD": "د.ج", "LBP": "ل.ل", "JOD": "د.ا",
	"KWD": "د.ك", "QAR": "ر.ق", "OMR": "ر.ع.", "BHD": "د.ب",
	"PKR": "₨", "BDT": "৳", "LKR": "₨", "NPR": "₨",
	"MMK": "K", "KHR": "៛", "LAK": "₭", "UZS": "лв", "KZT": "₸",
	"KGS": "лв", "TJS": "SM", "TMT": "T", "AFN": "؋", "IRR": "﷼",
	"IQD": "ع.د", "SYP": "£", "YER": "﷼", "AMD": "֏",
	"AZN": "₼", "GEL": "₾", "MDL": "L", "RON": "lei", "BGN": "лв",
	"HRK": "kn", "RSD": "дин.", "BAM": "KM", "MKD": "ден", "ALL": "L",
}

// Symbol returns the display symbol for a currency code, or the code
// itself when unknown.
func Symbol(code string) string {
	if s, ok := symbols[code]; ok {
		return s
	}
	return code
}

// Format renders an amount with its currency symbol and two decimal
// places.
func Format(amount decimal.Decimal, code string) string {
	return Symbol(code) + amount.StringFixed(2)
}

var nonNumeric = regexp.MustCompile(`[^\d.-]`)

// ParseAmount strips currency symbols and other non-numeric characters
// from user input and parses the remainder. Unparseable input yields
// zero.
func ParseAmount(input string) decimal.Decimal {
	cleaned := nonNumeric.ReplaceAllString(input, "")
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return amount
}

// Supported returns the known currency codes, sorted.
func Supported() []string {
	codes := make([]string, 0, len(symbols))
	for code := range symbols {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
