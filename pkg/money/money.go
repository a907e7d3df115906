// Package money formatea montos para vistas y reportes.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency moneda en la que se registran los costos de compra.
const Currency = "XAF"

var printer = message.NewPrinter(language.English)

// Format agrupa miles en inglés y deja siempre 2 decimales. Ej: 1250000.5 → "1,250,000.50".
func Format(d decimal.Decimal) string {
	return FormatWith(printer, d)
}

// FormatWith igual que Format con otro printer (otro locale).
func FormatWith(p *message.Printer, d decimal.Decimal) string {
	d = d.Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	whole := d.Truncate(0)
	cents := d.Sub(whole).Shift(2).IntPart()
	return sign + p.Sprintf("%d", whole.IntPart()) + fmt.Sprintf(".%02d", cents)
}

// WithCurrency Format con el prefijo de moneda. Ej: "XAF 1,250,000.50".
func WithCurrency(d decimal.Decimal) string {
	return Currency + " " + Format(d)
}
