package receipt

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// purchaseLayout parses the concatenated purchaseDate and purchaseTime fields.
const purchaseLayout = "2006-01-02 15:04"

// Normalize converts a validated submission into its typed form. Amounts are
// parsed exactly into integer cents and the date/time pair is combined into a
// single naive timestamp. Shape conformance is assumed; a parse failure here
// means the upstream validation was bypassed or the calendar date is bogus,
// and is returned as an error rather than silently defaulted.
func Normalize(raw RawReceipt) (Receipt, error) {
	total, err := parseCents(raw.Total)
	if err != nil {
		return Receipt{}, fmt.Errorf("parse total: %w", err)
	}
	purchasedAt, err := time.Parse(purchaseLayout, raw.PurchaseDate+" "+raw.PurchaseTime)
	if err != nil {
		return Receipt{}, fmt.Errorf("parse purchase date/time: %w", err)
	}
	items := make([]Item, len(raw.Items))
	for i, it := range raw.Items {
		price, err := parseCents(it.Price)
		if err != nil {
			return Receipt{}, fmt.Errorf("parse items[%d].price: %w", i, err)
		}
		items[i] = Item{ShortDescription: it.ShortDescription, Price: price}
	}
	return Receipt{
		Retailer:    raw.Retailer,
		Total:       total,
		PurchasedAt: purchasedAt,
		Items:       items,
	}, nil
}

// parseCents converts a two-decimal amount string into cents. The source
// representation is exact, so no rounding is involved.
func parseCents(amount string) (int64, error) {
	whole, frac, ok := strings.Cut(amount, ".")
	if !ok || len(frac) != 2 {
		return 0, fmt.Errorf("amount %q must have exactly two decimal places", amount)
	}
	dollars, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || dollars < 0 {
		return 0, fmt.Errorf("amount %q has an invalid dollar part", amount)
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil || cents < 0 {
		return 0, fmt.Errorf("amount %q has an invalid cent part", amount)
	}
	return dollars*100 + cents, nil
}
