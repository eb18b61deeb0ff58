package dto

import (
	"fmt"

	"github.com/SscSPs/workspace_chat_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the custom binding tags used by the request DTOs to gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	if err := v.RegisterValidation("mediatype", func(fl validator.FieldLevel) bool {
		return domain.MediaType(fl.Field().String()).IsValid()
	}); err != nil {
		return err
	}
	return v.RegisterValidation("workspacetype", func(fl validator.FieldLevel) bool {
		return domain.WorkspaceType(fl.Field().String()).IsValid()
	})
}
