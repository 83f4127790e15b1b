package money

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// 表示用の通貨設定は固定です (en-US / USD / 小数桁 0)。
const currencySymbol = "$"

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency は金額を "$6,000,000" 形式の通貨文字列に変換します。
// 負数は "-$5,000" のように符号を通貨記号の前に置きます。
func FormatCurrency(amount int64) string {
	grouped := printer.Sprintf("%d", amount)
	if digits, negative := strings.CutPrefix(grouped, "-"); negative {
		return "-" + currencySymbol + digits
	}
	return currencySymbol + grouped
}
