package receipt

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	validator "github.com/go-playground/validator/v10"
)

// FieldError describes a single validation failure on a named request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var (
	retailerPattern = regexp.MustCompile(`^[\w\s\-&]+$`)
	isoDatePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	clock24Pattern  = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
	moneyPattern    = regexp.MustCompile(`^\d+\.\d{2}$`)
)

var receiptValidator = newReceiptValidator()

func newReceiptValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegisterPattern(v, "retailer", retailerPattern)
	mustRegisterPattern(v, "isodate", isoDatePattern)
	mustRegisterPattern(v, "clock24", clock24Pattern)
	mustRegisterPattern(v, "money", moneyPattern)
	return v
}

func mustRegisterPattern(v *validator.Validate, tag string, re *regexp.Regexp) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(fmt.Errorf("register %s validation: %w", tag, err))
	}
}

// Validate checks a submitted receipt against the request schema and returns
// one FieldError per violation. An empty result means the receipt is safe to
// normalize. Validation is shape-only: calendar validity of the date/time pair
// is left to Normalize.
func Validate(raw RawReceipt) []FieldError {
	err := receiptValidator.Struct(raw)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "receipt", Message: "invalid payload"}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fieldPath(fe), Message: messageFor(fe)})
	}
	return out
}

// fieldPath strips the root struct name so errors read "items[0].price"
// rather than "RawReceipt.items[0].price".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return fe.Field()
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must contain at least one item"
	case "retailer":
		return fmt.Sprintf("%q may only contain letters, digits, spaces, hyphens and ampersands", fe.Value())
	case "isodate":
		return fmt.Sprintf("%q must be a date in YYYY-MM-DD format", fe.Value())
	case "clock24":
		return fmt.Sprintf("%q must be a 24-hour time in HH:MM format", fe.Value())
	case "money":
		return fmt.Sprintf("%q must be an amount with exactly two decimal places", fe.Value())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
