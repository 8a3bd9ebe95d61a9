package totals

import (
	"math"
	"strconv"
	"strings"
)

// maxSpelledRupees is one crore crore. Larger amounts are written in digits.
const maxSpelledRupees = 1e14

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// AmountInWords spells an amount using Indian grouping (crores, lakhs,
// thousands), e.g. 246.5 -> "Two Hundred and Forty Six Rupees and Fifty Paise Only".
func AmountInWords(amount float64) string {
	amount = Round2(finite(amount))
	if amount < 0 {
		return "Minus " + AmountInWords(-amount)
	}
	if amount >= maxSpelledRupees {
		return strconv.FormatFloat(amount, 'f', 2, 64) + " Rupees Only"
	}

	cents := int64(math.Round(amount * 100))
	rupees := cents / 100
	paise := cents % 100

	var b strings.Builder
	if rupees == 0 {
		b.WriteString("Zero")
	} else {
		b.WriteString(indianWords(rupees))
	}
	b.WriteString(" Rupees")
	if paise > 0 {
		b.WriteString(" and ")
		b.WriteString(under100(paise))
		b.WriteString(" Paise")
	}
	b.WriteString(" Only")
	return b.String()
}

func indianWords(n int64) string {
	var parts []string

	if n >= 10000000 {
		crores := n / 10000000
		// Crores may exceed 99; spell them recursively.
		parts = append(parts, indianWords(crores)+" Crore")
		n %= 10000000
	}
	if n >= 100000 {
		parts = append(parts, under100(n/100000)+" Lakh")
		n %= 100000
	}
	if n >= 1000 {
		parts = append(parts, under100(n/1000)+" Thousand")
		n %= 1000
	}
	if n >= 100 {
		parts = append(parts, ones[n/100]+" Hundred")
		n %= 100
	}
	if n > 0 {
		if len(parts) > 0 {
			parts = append(parts, "and "+under100(n))
		} else {
			parts = append(parts, under100(n))
		}
	}
	return strings.Join(parts, " ")
}

func under100(n int64) string {
	if n < 20 {
		return ones[n]
	}
	s := tens[n/10]
	if n%10 != 0 {
		s += " " + ones[n%10]
	}
	return s
}
