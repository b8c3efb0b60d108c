package utils

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/rivo/uniseg"
)

// MaxGraphemesValidator limits user-facing text by grapheme cluster count
// rather than bytes, e.g. `validate:"maxgraphemes=64"`.
func MaxGraphemesValidator(fl validator.FieldLevel) bool {

	maxLength, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}

	field := fl.Field().String()
	gr := uniseg.NewGraphemes(field)
	count := 0
	for gr.Next() {
		count++
		if count > maxLength {
			return false
		}
	}

	return true

}
