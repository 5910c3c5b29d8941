package apihandlers

import (
	"log/slog"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	formTypes "github.com/formtracer/form-backend/pkg/form/types"
)

// RegisterBindingValidators attaches the custom validation tags used by
// the request payloads to gin's binding engine. Call once at startup.
func RegisterBindingValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		slog.Error("unexpected binding validator engine, custom tags not registered")
		return
	}

	if err := v.RegisterValidation("questiontype", validQuestionType); err != nil {
		slog.Error("failed to register questiontype validator", slog.String("error", err.Error()))
	}
}

func validQuestionType(fl validator.FieldLevel) bool {
	return formTypes.IsKnownQuestionType(fl.Field().String())
}
