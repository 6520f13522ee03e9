package security

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-errors"
)

// Request types understood by the bundled provider. Managers are free to
// define additional types.
const (
	RequestTypePassword = "password"
	RequestTypeToken    = "token"
	RequestTypeOAuth    = "oauth"
)

// AuthenticationRequest carries inbound authentication input. Which fields
// are required depends on Type: password requests carry Username/Password,
// token requests carry Token, oauth requests carry Code and RedirectURI.
// Parameters holds any additional provider-specific input.
type AuthenticationRequest struct {
	Type        string
	Username    string
	Password    string
	Token       string
	Code        string
	RedirectURI string
	ClientIP    string
	UserAgent   string
	Parameters  map[string]any
}

// NewPasswordRequest builds a password authentication request.
func NewPasswordRequest(username, password string) *AuthenticationRequest {
	return &AuthenticationRequest{
		Type:     RequestTypePassword,
		Username: username,
		Password: password,
	}
}

// NewTokenRequest builds a token authentication request.
func NewTokenRequest(token string) *AuthenticationRequest {
	return &AuthenticationRequest{
		Type:  RequestTypeToken,
		Token: token,
	}
}

// Parameter looks up an extra parameter by name.
func (r *AuthenticationRequest) Parameter(name string) (any, bool) {
	v, ok := r.Parameters[name]
	return v, ok
}

// Validate checks the request is well formed for its type. It performs
// structural validation only and never touches a credential store.
func (r *AuthenticationRequest) Validate() error {
	rules := validation.Errors{
		"type": validation.Validate(r.Type, validation.Required),
	}

	switch r.Type {
	case RequestTypePassword:
		rules["username"] = validation.Validate(r.Username, validation.Required)
		rules["password"] = validation.Validate(r.Password, validation.Required)
	case RequestTypeToken:
		rules["token"] = validation.Validate(r.Token, validation.Required)
	case RequestTypeOAuth:
		rules["code"] = validation.Validate(r.Code, validation.Required)
		rules["redirect_uri"] = validation.Validate(r.RedirectURI, validation.Required)
	}

	if err := rules.Filter(); err != nil {
		return errors.Wrap(err, ErrMalformedRequest.Category, ErrMalformedRequest.Message).
			WithTextCode(ErrMalformedRequest.TextCode)
	}
	return nil
}
