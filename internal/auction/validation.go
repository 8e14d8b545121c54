package auction

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Categories is the fixed set an auction may be filed under
var Categories = []string{
	"Antiques",
	"Art",
	"Books",
	"Collectibles",
	"Electronics",
	"Fashion",
	"Home",
	"Jewellery",
	"Sports",
	"Toys",
	"Vehicles",
	"Others",
}

// Input is a candidate auction as submitted for create or edit
type Input struct {
	RoomDisplayName string    `json:"room_display_name" validate:"required,max=200"`
	AuctionItemName string    `json:"auction_item_name" validate:"required,max=200"`
	StartTime       time.Time `json:"start_time" validate:"required"`
	EndTime         time.Time `json:"end_time" validate:"required,gtefield=StartTime"`
	MinBid          float64   `json:"minbid" validate:"gte=0"`
	Increment       float64   `json:"increment" validate:"gte=0"`
	Category        string    `json:"category" validate:"required,auction_category"`
	Description     string    `json:"description" validate:"omitempty,max=500"`
}

// FieldError is one violated rule, keyed by the JSON field name
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError carries every violation found in one pass
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var rules = newRules()

func newRules() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	if err := v.RegisterValidation("auction_category", func(fl validator.FieldLevel) bool {
		return IsCategory(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("auction: register category rule: %v", err))
	}

	return v
}

// IsCategory reports whether c is one of Categories
func IsCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Validate checks every rule and returns all violations; an empty result means the input is valid
func Validate(in Input) []FieldError {
	err := rules.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "", Rule: "invalid", Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: message(fe),
		})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "gtefield":
		return "end_time can't be before start_time"
	case "auction_category":
		return fmt.Sprintf("category must be one of %s", strings.Join(Categories, ", "))
	default:
		return fmt.Sprintf("%s failed rule %s", fe.Field(), fe.Tag())
	}
}
