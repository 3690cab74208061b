package receipt

import "time"

// RawReceipt is the request payload for receipt submission. All amount and
// date fields arrive as strings and are checked by Validate before any
// normalization happens.
type RawReceipt struct {
	Retailer     string    `json:"retailer" validate:"required,retailer"`
	PurchaseDate string    `json:"purchaseDate" validate:"required,isodate"`
	PurchaseTime string    `json:"purchaseTime" validate:"required,clock24"`
	Total        string    `json:"total" validate:"required,money"`
	Items        []RawItem `json:"items" validate:"required,min=1,dive"`
}

// RawItem is a single line of a submitted receipt.
type RawItem struct {
	ShortDescription string `json:"shortDescription" validate:"required"`
	Price            string `json:"price" validate:"required,money"`
}

// Receipt is the normalized form of a submission: amounts in integer cents,
// date and time combined into a single naive timestamp. Item order matches
// the submission order.
type Receipt struct {
	Retailer    string
	Total       int64
	PurchasedAt time.Time
	Items       []Item
}

// Item is a normalized receipt line.
type Item struct {
	ShortDescription string
	Price            int64
}

// ScoredReceipt is a processed receipt together with its computed points.
// It is never mutated after creation.
type ScoredReceipt struct {
	ID          string    `json:"id"`
	Receipt     Receipt   `json:"receipt"`
	Points      int64     `json:"points"`
	ProcessedAt time.Time `json:"processedAt"`
}
