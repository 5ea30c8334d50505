// Package receipt renders the plain-text purchase ticket offered for download
// at checkout.
package receipt

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dwikikusuma/cartsim/internal/cart/domain"
	"github.com/dwikikusuma/cartsim/internal/pricing"
)

const FileName = "ticket_compra.txt"

const separator = "-------------------------"

type Locale struct {
	Tag        string
	Header     string
	Subtotal   string
	Discount   string
	Total      string
	Date       string
	TimeLayout string
}

var (
	English = Locale{
		Tag:        "en",
		Header:     "PURCHASE RECEIPT",
		Subtotal:   "Subtotal",
		Discount:   "Discount",
		Total:      "TOTAL",
		Date:       "Date",
		TimeLayout: "1/2/2006, 3:04:05 PM",
	}
	Spanish = Locale{
		Tag:        "es",
		Header:     "TICKET DE COMPRA",
		Subtotal:   "Subtotal",
		Discount:   "Descuento",
		Total:      "TOTAL",
		Date:       "Fecha",
		TimeLayout: "2/1/2006, 15:04:05",
	}
)

// LocaleFor matches on the language part of tag ("es-AR" -> Spanish) and
// falls back to English.
func LocaleFor(tag string) Locale {
	lang, _, _ := strings.Cut(strings.ToLower(strings.TrimSpace(tag)), "-")
	lang, _, _ = strings.Cut(lang, "_")
	if lang == Spanish.Tag {
		return Spanish
	}
	return English
}

type Formatter struct {
	Locale Locale
}

func NewFormatter(locale Locale) Formatter {
	return Formatter{Locale: locale}
}

// Format is a pure function of its inputs. Callers reject empty carts before
// calling it.
func (f Formatter) Format(lines []domain.Line, totals pricing.Result, at time.Time) string {
	loc := f.Locale
	var b strings.Builder

	b.WriteString(loc.Header + "\n")
	b.WriteString(separator + "\n")
	for _, l := range lines {
		fmt.Fprintf(&b, "%s x%d - %s\n", l.Name, l.Quantity, money(l.Total()))
	}
	b.WriteString(separator + "\n")
	fmt.Fprintf(&b, "%s: %s\n", loc.Subtotal, money(totals.Subtotal))
	fmt.Fprintf(&b, "%s: %s\n", loc.Discount, money(totals.Discount))
	fmt.Fprintf(&b, "%s: %s\n", loc.Total, money(totals.Total))
	fmt.Fprintf(&b, "%s: %s\n", loc.Date, at.Format(loc.TimeLayout))

	return b.String()
}

func Format(lines []domain.Line, totals pricing.Result, at time.Time) string {
	return Formatter{Locale: English}.Format(lines, totals, at)
}

func money(d decimal.Decimal) string {
	return "$" + d.String()
}
