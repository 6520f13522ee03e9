package security

import (
	stderrors "errors"

	"github.com/goliatone/go-errors"
)

// Stable text codes attached to every error produced by this package.
// Callers should branch on these rather than on error messages.
const (
	TextCodeInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	TextCodeAccountLocked      = "AUTH_ACCOUNT_LOCKED"
	TextCodeAccountDisabled    = "AUTH_ACCOUNT_DISABLED"
	TextCodeAccountExpired     = "AUTH_ACCOUNT_EXPIRED"
	TextCodeMethodUnsupported  = "AUTH_METHOD_UNSUPPORTED"
	TextCodeMalformedRequest   = "AUTH_MALFORMED_REQUEST"

	TextCodeAccessDenied           = "AUTHZ_ACCESS_DENIED"
	TextCodeInsufficientPermission = "AUTHZ_INSUFFICIENT_PERMISSION"
	TextCodeInsufficientRole       = "AUTHZ_INSUFFICIENT_ROLE"

	TextCodeTokenInvalidSignature = "TOKEN_INVALID_SIGNATURE"
	TextCodeTokenExpired          = "TOKEN_EXPIRED"
	TextCodeTokenMalformed        = "TOKEN_MALFORMED"
	TextCodeTokenRevoked          = "TOKEN_REVOKED"
	TextCodeTokenIssueFailed      = "TOKEN_ISSUE_FAILED"
	TextCodeTokenParseFailed      = "TOKEN_PARSE_FAILED"
	TextCodeTokenRefreshFailed    = "TOKEN_REFRESH_FAILED"
	TextCodeTokenRevokeFailed     = "TOKEN_REVOKE_FAILED"

	TextCodePrincipalNotFound     = "PRINCIPAL_NOT_FOUND"
	TextCodePrincipalInvalid      = "PRINCIPAL_INVALID"
	TextCodePrincipalCreateFailed = "PRINCIPAL_CREATE_FAILED"

	TextCodePermissionNotFound = "PERMISSION_NOT_FOUND"
	TextCodePermissionInvalid  = "PERMISSION_INVALID"

	TextCodeRoleNotFound = "ROLE_NOT_FOUND"
	TextCodeRoleInvalid  = "ROLE_INVALID"

	TextCodeConfigMissing = "CONFIG_MISSING"
	TextCodeConfigInvalid = "CONFIG_INVALID"

	TextCodeProviderNotFound    = "PROVIDER_NOT_FOUND"
	TextCodeProviderInvalid     = "PROVIDER_INVALID"
	TextCodeProviderUnavailable = "PROVIDER_UNAVAILABLE"
	TextCodeProviderInitFailed  = "PROVIDER_INIT_FAILED"

	TextCodeValidationMissingField = "VALIDATION_MISSING_FIELD"
	TextCodeValidationInvalidField = "VALIDATION_INVALID_FIELD"
	TextCodeValidationMalformed    = "VALIDATION_MALFORMED"

	TextCodeSystemInternal    = "SYSTEM_INTERNAL"
	TextCodeSystemUnavailable = "SYSTEM_UNAVAILABLE"
	TextCodeSystemTimeout     = "SYSTEM_TIMEOUT"
	TextCodeSystemRateLimited = "SYSTEM_RATE_LIMITED"
)

// ErrInvalidCredentials is returned when credentials do not match any principal.
var ErrInvalidCredentials = errors.New("invalid credentials", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(errors.CodeUnauthorized)

// ErrAccountLocked is returned when the principal exists but is locked.
var ErrAccountLocked = errors.New("account is locked", errors.CategoryAuth).
	WithTextCode(TextCodeAccountLocked).
	WithCode(errors.CodeForbidden)

// ErrAccountDisabled is returned when the principal is inactive.
var ErrAccountDisabled = errors.New("account is disabled", errors.CategoryAuth).
	WithTextCode(TextCodeAccountDisabled).
	WithCode(errors.CodeForbidden)

// ErrAccountExpired is returned when the principal has expired.
var ErrAccountExpired = errors.New("account is expired", errors.CategoryAuth).
	WithTextCode(TextCodeAccountExpired).
	WithCode(errors.CodeForbidden)

// ErrMethodUnsupported is returned when no manager supports the request type.
var ErrMethodUnsupported = errors.New("authentication method not supported", errors.CategoryAuth).
	WithTextCode(TextCodeMethodUnsupported).
	WithCode(errors.CodeBadRequest)

// ErrMalformedRequest is returned when an authentication request fails
// structural validation.
var ErrMalformedRequest = errors.New("malformed authentication request", errors.CategoryBadInput).
	WithTextCode(TextCodeMalformedRequest).
	WithCode(errors.CodeBadRequest)

// ErrAccessDenied is the generic authorization failure.
var ErrAccessDenied = errors.New("access denied", errors.CategoryAuthz).
	WithTextCode(TextCodeAccessDenied).
	WithCode(errors.CodeForbidden)

// ErrTokenInvalidSignature is returned when signature verification fails.
var ErrTokenInvalidSignature = errors.New("token signature is invalid", errors.CategoryAuth).
	WithTextCode(TextCodeTokenInvalidSignature).
	WithCode(errors.CodeUnauthorized)

// ErrTokenExpired is returned when a token's exp claim has passed.
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed is returned when a token cannot be decoded.
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryBadInput).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeBadRequest)

// ErrTokenRevoked is returned when a revocation store reports the token
// as revoked.
var ErrTokenRevoked = errors.New("token is revoked", errors.CategoryAuth).
	WithTextCode(TextCodeTokenRevoked).
	WithCode(errors.CodeUnauthorized)

// ErrPrincipalNotFound is returned when an identifier matches no principal.
var ErrPrincipalNotFound = errors.New("principal not found", errors.CategoryNotFound).
	WithTextCode(TextCodePrincipalNotFound).
	WithCode(errors.CodeNotFound)

// ErrPrincipalInvalid is returned when principal construction fails validation.
var ErrPrincipalInvalid = errors.New("principal is invalid", errors.CategoryValidation).
	WithTextCode(TextCodePrincipalInvalid).
	WithCode(errors.CodeBadRequest)

// ErrProviderNotFound is returned when a provider name is not registered.
var ErrProviderNotFound = errors.New("security provider not found", errors.CategoryNotFound).
	WithTextCode(TextCodeProviderNotFound).
	WithCode(errors.CodeNotFound)

// ErrProviderUnavailable is returned when a provider is registered but
// reports itself unavailable.
var ErrProviderUnavailable = errors.New("security provider unavailable", errors.CategoryOperation).
	WithTextCode(TextCodeProviderUnavailable).
	WithCode(errors.CodeConflict)

// ErrConfigInvalid is returned when provider configuration cannot be applied.
var ErrConfigInvalid = errors.New("configuration is invalid", errors.CategoryValidation).
	WithTextCode(TextCodeConfigInvalid).
	WithCode(errors.CodeBadRequest)

// ErrorTextCode extracts the stable text code from an error, returning an
// empty string for nil or foreign errors.
func ErrorTextCode(err error) string {
	if err == nil {
		return ""
	}
	var ge *errors.Error
	if stderrors.As(err, &ge) && ge != nil {
		return ge.TextCode
	}
	return ""
}

// IsTokenExpiredError checks whether err carries the TOKEN_EXPIRED code.
func IsTokenExpiredError(err error) bool {
	return ErrorTextCode(err) == TextCodeTokenExpired
}

// IsTokenMalformedError checks whether err carries the TOKEN_MALFORMED code.
func IsTokenMalformedError(err error) bool {
	return ErrorTextCode(err) == TextCodeTokenMalformed
}

// IsProviderNotFoundError checks whether err carries the PROVIDER_NOT_FOUND code.
func IsProviderNotFoundError(err error) bool {
	return ErrorTextCode(err) == TextCodeProviderNotFound
}
