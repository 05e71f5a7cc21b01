package codec

import (
	"strconv"
	"strings"
	"time"

	"github.com/yigit/isluportal/internal/app/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PaymentDateLayout is the layout of the payment log date column
const PaymentDateLayout = "01/02/2006 03:04 PM"

const paymentFields = 5

// CurrencyPrefix stands in for the peso sign in stored amounts
const CurrencyPrefix = "P"

var amountPrinter = message.NewPrinter(language.English)

var amountStripper = strings.NewReplacer(CurrencyPrefix, "", ",", "", " ", "")

// ParseAmount strips the currency prefix, thousands separators and spaces,
// then parses the rest as a decimal number. "P 1,234.50" is 1234.5.
func ParseAmount(s string) (float64, error) {
	return strconv.ParseFloat(amountStripper.Replace(strings.TrimSpace(s)), 64)
}

// FormatAmount renders v with two decimals and thousands separators,
// e.g. "P 1,234.50".
func FormatAmount(v float64) string {
	return CurrencyPrefix + " " + amountPrinter.Sprintf("%.2f", v)
}

// FormatPaymentDate renders t in the payment log layout
func FormatPaymentDate(t time.Time) string {
	return t.Format(PaymentDateLayout)
}

// DecodePayment parses date,channel,reference,amount,studentID.
//
// The amount is written with thousands separators, so a line may split into
// more than five fields. The student ID is always the last field. The amount
// is found by walking back from it over three-digit groups to the field that
// looks like "P <digits>"; anything between the channel and the amount is the
// reference.
func DecodePayment(line string) (models.PaymentTransaction, error) {
	parts, err := splitFields(KindPayment, line, paymentFields)
	if err != nil {
		return models.PaymentTransaction{}, err
	}

	last := len(parts) - 1
	amountAt := last - 1
	i := amountAt
	for i > 3 && isThousandsGroup(parts[i]) {
		i--
	}
	if looksLikeAmount(parts[i]) {
		amountAt = i
	}

	rawAmount := strings.Join(parts[amountAt:last], fieldSep)
	amount, err := ParseAmount(rawAmount)
	if err != nil {
		return models.PaymentTransaction{}, malformed(KindPayment, "amount %q: %v", rawAmount, err)
	}

	return models.PaymentTransaction{
		Date:      parts[0],
		Channel:   parts[1],
		Reference: strings.Join(parts[2:amountAt], fieldSep),
		Amount:    amount,
		StudentID: parts[last],
	}, nil
}

func looksLikeAmount(field string) bool {
	rest, ok := strings.CutPrefix(field, CurrencyPrefix)
	if !ok {
		return false
	}
	rest = strings.TrimSpace(rest)
	return rest != "" && (rest[0] == '-' || (rest[0] >= '0' && rest[0] <= '9'))
}

// isThousandsGroup matches the pieces after a thousands separator: "234" or
// "234.50"
func isThousandsGroup(field string) bool {
	whole, frac, _ := strings.Cut(field, ".")
	return len(whole) == 3 && isDigits(whole) && (frac == "" || isDigits(frac))
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// EncodePayment renders a payment log line
func EncodePayment(p models.PaymentTransaction) string {
	return strings.Join([]string{
		p.Date, p.Channel, p.Reference, FormatAmount(p.Amount), p.StudentID,
	}, fieldSep)
}
