// Package validator registers custom binding rules on gin's validator
// engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// usphone accepts anything that reduces to at least seven digits. The
// dispatcher normalizes further at send time; this only rejects input
// with no usable number at all.
func usphone(fl validator.FieldLevel) bool {
	digits := 0
	for _, r := range fl.Field().String() {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 7 && digits <= 15
}

// Register installs the custom rules. Call once at startup.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("usphone", usphone)
}
