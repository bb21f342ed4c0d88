package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo is an error code plus a user-facing message
type ErrorInfo struct {
	Code    string // see codes.go
	Message string
}

// ParseError maps persistence and infrastructure errors to a code and a
// user-facing message. Driver details never leak into the message.
// context names the operation, e.g. "create product" or "delete category".
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "Se produjo un error en el servidor",
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFoundInfo(context)
	}

	// PostgreSQL 23505 / SQLite "UNIQUE constraint failed"
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(errStrLower, "duplicate key") ||
		strings.Contains(errStrLower, "unique constraint") {
		return parseDuplicateKeyError(errStrLower)
	}

	// 23503
	if errors.Is(err, gorm.ErrForeignKeyViolated) || strings.Contains(errStrLower, "foreign key constraint") {
		return parseForeignKeyError(errStrLower, context)
	}

	// 23502
	if strings.Contains(errStrLower, "not-null constraint") || strings.Contains(errStrLower, "not null constraint") {
		return parseNotNullError(errStrLower)
	}

	// 23514
	if strings.Contains(errStrLower, "check constraint") {
		return parseCheckConstraintError(errStrLower)
	}

	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") ||
		strings.Contains(errStrLower, "deadline exceeded") {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "No se pudo conectar con un servicio externo. Inténtalo de nuevo en unos minutos",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: defaultErrorMessage(context),
	}
}

func parseDuplicateKeyError(errLower string) ErrorInfo {
	switch {
	case strings.Contains(errLower, "categories"):
		return ErrorInfo{Code: CategoryNameExists, Message: "Ya existe una categoría con ese nombre"}
	case strings.Contains(errLower, "external_id"):
		return ErrorInfo{Code: ProductExternalIDDup, Message: "Ya existe un producto con ese identificador"}
	case strings.Contains(errLower, "pkey") || strings.Contains(errLower, "primary key"):
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "El registro ya existe. Inténtalo de nuevo"}
	}
	return ErrorInfo{Code: ResourceAlreadyExists, Message: "El registro ya existe"}
}

func parseForeignKeyError(errLower string, context string) ErrorInfo {
	if strings.Contains(errLower, "still referenced") || strings.Contains(strings.ToLower(context), "delete") {
		if strings.Contains(strings.ToLower(context), "category") {
			return ErrorInfo{Code: CategoryInUse, Message: "La categoría tiene productos y no se puede eliminar"}
		}
		return ErrorInfo{Code: ResourceConflict, Message: "El registro tiene datos relacionados y no se puede eliminar"}
	}
	if strings.Contains(errLower, "category_id") || strings.Contains(errLower, "fk_products_category") {
		return ErrorInfo{Code: CategoryNotFound, Message: "La categoría no existe"}
	}
	return ErrorInfo{Code: ResourceNotFound, Message: "No se encontró el registro relacionado"}
}

func parseNotNullError(errLower string) ErrorInfo {
	switch {
	case strings.Contains(errLower, "title"):
		return ErrorInfo{Code: ValidationRequired, Message: "El título es obligatorio"}
	case strings.Contains(errLower, "price"):
		return ErrorInfo{Code: ValidationRequired, Message: "El precio es obligatorio"}
	case strings.Contains(errLower, "name"):
		return ErrorInfo{Code: ValidationRequired, Message: "El nombre es obligatorio"}
	}
	return ErrorInfo{Code: ValidationRequired, Message: "Falta un campo obligatorio"}
}

func parseCheckConstraintError(errLower string) ErrorInfo {
	switch {
	case strings.Contains(errLower, "rating"):
		return ErrorInfo{Code: ValidationInvalidRange, Message: "La valoración debe estar entre 0 y 5"}
	case strings.Contains(errLower, "price"):
		return ErrorInfo{Code: ProductInvalidPrice, Message: "El precio no es válido"}
	case strings.Contains(errLower, "stock"):
		return ErrorInfo{Code: ProductInvalidStock, Message: "El stock no puede ser negativo"}
	}
	return ErrorInfo{Code: ValidationInvalidInput, Message: "Los datos introducidos no son válidos"}
}

func notFoundInfo(context string) ErrorInfo {
	contextLower := strings.ToLower(context)
	switch {
	case strings.Contains(contextLower, "category"):
		return ErrorInfo{Code: CategoryNotFound, Message: "No se encontró la categoría"}
	case strings.Contains(contextLower, "product"):
		return ErrorInfo{Code: ProductNotFound, Message: "No se encontró el producto"}
	case strings.Contains(contextLower, "cart"):
		return ErrorInfo{Code: CartItemNotFound, Message: "El producto no está en el carrito"}
	}
	return ErrorInfo{Code: ResourceNotFound, Message: "No se encontraron los datos solicitados"}
}

func defaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)
	switch {
	case strings.Contains(contextLower, "create"):
		return "No se pudo crear el registro. Inténtalo de nuevo en unos minutos"
	case strings.Contains(contextLower, "update"):
		return "No se pudo actualizar el registro. Inténtalo de nuevo en unos minutos"
	case strings.Contains(contextLower, "delete"):
		return "No se pudo eliminar el registro. Inténtalo de nuevo en unos minutos"
	case strings.Contains(contextLower, "upload"):
		return "No se pudo subir la imagen. Inténtalo de nuevo en unos minutos"
	}
	return "Se produjo un error en el servidor. Inténtalo de nuevo en unos minutos"
}

// ParseAndRespond parses err and writes it as an ErrorResponse
func ParseAndRespond(c interface{ JSON(int, interface{}) }, statusCode int, err error, context string) {
	errorInfo := ParseError(err, context)
	c.JSON(statusCode, ErrorResponse{
		Error:   errorInfo.Code,
		Message: errorInfo.Message,
	})
}
