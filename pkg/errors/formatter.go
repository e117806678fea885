package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ValidationErrorResponse struct {
	Field   string `json:"field"`
	Tag     string `json:"-"`
	Message string `json:"message"`
}

func msgForTag(tag string) string {
	switch tag {
	case "required":
		return "This field is required"
	case "email", "basic_email":
		return "Invalid email format"
	case "max":
		return "Value is too long or too large"
	case "oneof":
		return "Value is not one of the accepted values"
	default:
		return "Invalid value"
	}
}

func getJSONFieldName(structType reflect.Type, fieldName string) string {
	field, found := structType.FieldByName(fieldName)
	if !found {
		return fieldName
	}

	jsonTag := field.Tag.Get("json")
	if jsonTag == "" {
		return fieldName
	}

	return strings.Split(jsonTag, ",")[0]
}

// FormatValidationErrors flattens binding failures into per-field messages.
// It returns nil for errors that are not type or validation failures, such
// as a syntactically broken JSON body.
func FormatValidationErrors(err error, model interface{}) []ValidationErrorResponse {
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return []ValidationErrorResponse{{
			Field:   typeErr.Field,
			Tag:     "type",
			Message: fmt.Sprintf("Invalid type for field %s. Expected %s, got %s", typeErr.Field, typeErr.Type, typeErr.Value),
		}}
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	var structType reflect.Type
	if model != nil {
		structType = reflect.TypeOf(model)
		if structType.Kind() == reflect.Ptr {
			structType = structType.Elem()
		}
	}

	list := make([]ValidationErrorResponse, len(validationErrors))
	for i, fieldError := range validationErrors {
		jsonField := fieldError.Field()
		if structType != nil {
			jsonField = getJSONFieldName(structType, fieldError.Field())
		}

		message := msgForTag(fieldError.Tag())
		if fieldError.Tag() == "max" && fieldError.Param() != "" {
			message = fmt.Sprintf("Must not exceed %s characters", fieldError.Param())
		}

		list[i] = ValidationErrorResponse{
			Field:   jsonField,
			Tag:     fieldError.Tag(),
			Message: message,
		}
	}

	return list
}
