package apperr

// Generic
var (
	ErrValidation = New(KindValidation, "VALIDATION_ERROR", "invalid input")
	ErrInternal   = New(KindInternal, "INTERNAL", "internal error")
	ErrDatabase   = New(KindInternal, "DATABASE_ERROR", "database operation failed")
	ErrNotFound   = New(KindNotFound, "NOT_FOUND", "resource not found")
	ErrConflict   = New(KindConflict, "CONFLICT", "resource conflict")
)

// Authentication and authorization
var (
	ErrUnauthorized          = New(KindUnauthorized, "UNAUTHORIZED", "authentication required")
	ErrForbidden             = New(KindForbidden, "FORBIDDEN", "insufficient permissions")
	ErrInvalidCredentials    = New(KindUnauthorized, "INVALID_CREDENTIALS", "invalid email or password")
	ErrTokenExpiredOrInvalid = New(KindUnauthorized, "TOKEN_EXPIRED_OR_INVALID", "token is expired or invalid")
	ErrTokenMalformed        = New(KindUnauthorized, "TOKEN_MALFORMED", "token is malformed")
	ErrTooManyAttempts       = New(KindRateLimited, "TOO_MANY_ATTEMPTS", "too many failed login attempts, try again later")
	ErrWeakPassword          = New(KindValidation, "WEAK_PASSWORD", "password does not meet strength requirements")
	ErrUserInactive          = New(KindForbidden, "USER_INACTIVE", "user account is inactive")
)

// Users
var (
	ErrUserNotFound           = New(KindNotFound, "USER_NOT_FOUND", "user not found")
	ErrEmailAlreadyExists     = New(KindConflict, "EMAIL_ALREADY_EXISTS", "email is already registered")
	ErrInvalidRole            = New(KindValidation, "INVALID_ROLE", "invalid user role")
	ErrRoleNotAllowed         = New(KindValidation, "ROLE_NOT_ALLOWED", "role cannot be self-assigned")
	ErrUserAlreadyActive      = New(KindConflict, "USER_ALREADY_ACTIVE", "user is already active")
	ErrUserAlreadyInactive    = New(KindConflict, "USER_ALREADY_INACTIVE", "user is already inactive")
	ErrUserDeletionNotAllowed = New(KindForbidden, "USER_DELETION_NOT_ALLOWED", "admin users cannot be deleted")
)

// Catalog
var (
	ErrProductNotFound      = New(KindNotFound, "PRODUCT_NOT_FOUND", "product not found")
	ErrDuplicateProductName = New(KindConflict, "DUPLICATE_PRODUCT_NAME", "a product with this name already exists")
	ErrCategoryNotFound     = New(KindNotFound, "CATEGORY_NOT_FOUND", "category not found")
	ErrDuplicateCategory    = New(KindConflict, "DUPLICATE_CATEGORY_NAME", "a category with this name already exists")
	ErrCategoryInUse        = New(KindConflict, "CATEGORY_IN_USE", "category still has products")
)
