package waitlist

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/viewmark/viewmark/pkg/emailaddr"
)

const submitSuccessMessage = "Email submitted successfully"

type SubmitEmailRequest struct {
	Email string `json:"email" binding:"required,basic_email"`
}

type SubmitEmailResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

var registerValidationsOnce sync.Once

// RegisterValidations adds the basic_email tag to gin's validator. It is safe
// to call more than once.
func RegisterValidations() {
	registerValidationsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("basic_email", func(fl validator.FieldLevel) bool {
			return emailaddr.HasBasicShape(strings.TrimSpace(fl.Field().String()))
		})
	})
}
