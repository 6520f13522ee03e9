// Package localjwt provides the built-in "jwt" security provider: password
// and token authentication against a pluggable principal store, the default
// authorization checker, and an HMAC-signed token service.
//
// Register it through a security.ProviderSource to expose it from a
// security.ProviderRegistry.
package localjwt
