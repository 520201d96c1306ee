package validator

import (
	"reflect"

	"github.com/go-playground/validator/v10"
)

// budgetRanged is implemented by DTOs carrying a budget range.
type budgetRanged interface {
	Budget() (min, max float64)
}

func registerCustomRules(v *validator.Validate) error {
	// budget_range: valid when max >= min. Attached to the max field of
	// budget-carrying DTOs.
	return v.RegisterValidation("budget_range", func(fl validator.FieldLevel) bool {
		parent := fl.Parent()
		if parent.Kind() == reflect.Ptr {
			parent = parent.Elem()
		}
		if !parent.IsValid() || !parent.CanInterface() {
			return true
		}
		if br, ok := parent.Interface().(budgetRanged); ok {
			min, max := br.Budget()
			return max >= min
		}
		return true
	})
}
