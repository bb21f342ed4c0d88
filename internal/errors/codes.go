package errors

// Error codes returned in the "error" field of every error response.
// Format: CATEGORY_DETAIL. The storefront maps these codes to UI copy.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // login required
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // wrong email/password
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED" // token blacklisted after logout

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden = "AUTHZ_FORBIDDEN"
	AuthzAdminOnly = "AUTHZ_ADMIN_ONLY"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID     = "VALIDATION_INVALID_ID"
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT"
	ValidationInvalidRange  = "VALIDATION_INVALID_RANGE"
	ValidationRequired      = "VALIDATION_REQUIRED"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Catalog (PRODUCT_ / CATEGORY_) ====================
	ProductNotFound      = "PRODUCT_NOT_FOUND"
	ProductInvalidPrice  = "PRODUCT_INVALID_PRICE"
	ProductInvalidStock  = "PRODUCT_INVALID_STOCK"
	CategoryNotFound     = "CATEGORY_NOT_FOUND"
	CategoryNameExists   = "CATEGORY_NAME_EXISTS"
	CategoryInUse        = "CATEGORY_IN_USE" // still has products
	ProductExternalIDDup = "PRODUCT_EXTERNAL_ID_EXISTS"

	// ==================== Cart (CART_) ====================
	CartSessionMissing = "CART_SESSION_MISSING"
	CartItemNotFound   = "CART_ITEM_NOT_FOUND"

	// ==================== Upload (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadFailed          = "UPLOAD_FAILED"
	UploadNotConfigured   = "UPLOAD_NOT_CONFIGURED"

	// ==================== AI (AI_) ====================
	AIUnavailable     = "AI_UNAVAILABLE"
	AIInvalidResponse = "AI_INVALID_RESPONSE"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"
	InternalConfigError   = "INTERNAL_CONFIG_ERROR"
)
