package utils

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var inrPrinter = message.NewPrinter(language.English)

// FormatINR renders an amount in paise as a display string for receipts
// and payment listings, e.g. 1050000 -> "₹10,500.00".
func FormatINR(paise int64) string {
	return inrPrinter.Sprintf("₹%.2f", float64(paise)/100)
}

// RupeesToPaise converts a rupee entry fee to Razorpay minor units.
func RupeesToPaise(rupees float64) int64 {
	return int64(rupees*100 + 0.5)
}
