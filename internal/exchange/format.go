package exchange

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/cosmoforge/minecore/internal/domain"
)

var printer = message.NewPrinter(language.English)

// FormatAmount renders an amount with grouping separators for logs and
// user-facing error messages, e.g. "1,000.00 CCC".
func FormatAmount(c domain.Currency, v float64) string {
	return printer.Sprintf("%.2f %s", v, string(c))
}
