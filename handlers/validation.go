package handlers

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// RegisterValidators adds the cart binding rules to gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("handlers: gin validator is not go-playground/validator")
	}
	return v.RegisterValidation("productid", validProductID)
}

func validProductID(fl validator.FieldLevel) bool {
	id := fl.Field().String()
	return id != "" && len(id) <= 64 && strings.TrimSpace(id) == id
}
