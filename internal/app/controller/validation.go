package controller

import (
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/casaviva/hogar-backend/internal/errors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// respondBindError writes a per-field 400 for validator errors and a generic
// one for malformed bodies.
func respondBindError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "El cuerpo de la petición no es un JSON válido")
		return
	}

	fields := make(map[string]string, len(validationErrs))
	for _, fe := range validationErrs {
		fields[toSnakeCase(fe.Field())] = fieldMessage(fe)
	}
	apperrors.RespondWithValidationError(c, fields)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Campo obligatorio"
	case "min":
		return fmt.Sprintf("Debe tener al menos %s caracteres", fe.Param())
	case "max":
		return fmt.Sprintf("Debe tener como máximo %s caracteres", fe.Param())
	case "gt":
		return fmt.Sprintf("Debe ser mayor que %s", fe.Param())
	case "gte":
		return fmt.Sprintf("Debe ser mayor o igual que %s", fe.Param())
	case "lte":
		return fmt.Sprintf("Debe ser menor o igual que %s", fe.Param())
	case "url":
		return "Debe ser una URL válida"
	case "email":
		return "Debe ser un email válido"
	}
	return "Valor no válido"
}

func toSnakeCase(s string) string {
	var b strings.Builder
	prevLower := false
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			if prevLower {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
			prevLower = false
		} else {
			prevLower = true
		}
		b.WriteRune(r)
	}
	return b.String()
}
