package receipt

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	roundDollarBonus   = 50
	quarterCentsBonus  = 25
	itemPairBonus      = 5
	oddDayBonus        = 6
	afternoonBonus     = 10
	afternoonStartHour = 14
	afternoonEndHour   = 16
)

// Points computes the reward score for a normalized receipt. The score is the
// sum of seven independent rules, each a pure function of the receipt, so the
// result is deterministic and always non-negative.
func Points(r Receipt) int64 {
	return retailerPoints(r.Retailer) +
		roundDollarPoints(r.Total) +
		quarterPoints(r.Total) +
		itemPairPoints(len(r.Items)) +
		descriptionPoints(r.Items) +
		oddDayPoints(r.PurchasedAt) +
		afternoonPoints(r.PurchasedAt)
}

// retailerPoints awards one point per alphanumeric rune in the retailer name.
func retailerPoints(retailer string) int64 {
	var n int64
	for _, c := range retailer {
		if unicode.IsLetter(c) || unicode.IsDigit(c) {
			n++
		}
	}
	return n
}

// roundDollarPoints awards a bonus when the total has no cent part.
func roundDollarPoints(totalCents int64) int64 {
	if totalCents%100 == 0 {
		return roundDollarBonus
	}
	return 0
}

// quarterPoints awards a bonus when the total is a multiple of 25 cents.
func quarterPoints(totalCents int64) int64 {
	if totalCents%25 == 0 {
		return quarterCentsBonus
	}
	return 0
}

// itemPairPoints awards a bonus per complete pair of items. A single
// remaining item earns nothing.
func itemPairPoints(itemCount int) int64 {
	return itemPairBonus * int64(itemCount/2)
}

// descriptionPoints awards ceil(20% of the price) for every item whose
// trimmed description length is a multiple of three. A description that trims
// to the empty string has length zero, which is a multiple of three, and
// still qualifies.
func descriptionPoints(items []Item) int64 {
	var total int64
	for _, it := range items {
		trimmed := strings.TrimSpace(it.ShortDescription)
		if utf8.RuneCountInString(trimmed)%3 == 0 {
			total += ceilDiv(it.Price, 500)
		}
	}
	return total
}

// ceilDiv returns ceil(n/d) for non-negative n and positive d.
func ceilDiv(n, d int64) int64 {
	return (n + d - 1) / d
}

// oddDayPoints awards a bonus when the day of the month is odd.
func oddDayPoints(purchasedAt time.Time) int64 {
	if purchasedAt.Day()%2 == 1 {
		return oddDayBonus
	}
	return 0
}

// afternoonPoints awards a bonus for purchases made from 14:00 up to but
// excluding 16:00.
func afternoonPoints(purchasedAt time.Time) int64 {
	hour := purchasedAt.Hour()
	if hour >= afternoonStartHour && hour < afternoonEndHour {
		return afternoonBonus
	}
	return 0
}
