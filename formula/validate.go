package formula

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/arloliu/potency/errs"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return fld.Name
		}

		return name
	})

	return v
}

// check validates a struct and converts the first failure into a ValidationError.
func check(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validate input: %w", err)
	}

	fe := verrs[0]
	var detail string
	switch fe.Tag() {
	case "gte":
		detail = fmt.Sprintf("must be >= %s, got %v", fe.Param(), fe.Value())
	case "lte":
		detail = fmt.Sprintf("must be <= %s, got %v", fe.Param(), fe.Value())
	case "oneof":
		detail = fmt.Sprintf("must be one of [%s], got %v", fe.Param(), fe.Value())
	default:
		detail = fmt.Sprintf("failed %q, got %v", fe.Tag(), fe.Value())
	}

	return errs.Validation(errs.ErrInvalidInput, fe.Field(), "", 0, detail)
}

func clip(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}
