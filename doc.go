// Package security provides the principal and authority model, the signed
// token lifecycle, and the pluggable provider registry shared by services
// that authenticate and authorize callers.
//
// Data model:
//   - Permission, Role, and Claim are immutable value objects with identity
//     by name. AuthPrincipal and Authentication are built once through
//     builders that validate required fields and freeze the result; the
//     Authentication builder derives the authority set (ROLE_ prefixed role
//     names plus upper-cased permission names) exactly once.
//
// Tokens:
//   - TokenService encodes principal claims into signed, self-contained
//     tokens and decodes them back, with the cryptographic primitive
//     injected as a Signer. Revocation is a documented no-op unless a
//     RevocationStore is wired in. Externally issued tokens verify through
//     JWKSTokenValidator, composable via MultiTokenValidator.
//
// Providers:
//   - SecurityProvider bundles an AuthenticationManager, an
//     AuthorizationChecker, and a TokenService behind a named scheme.
//     ProviderRegistry discovers providers from an injected ProviderSource,
//     keeps the first registration per name, and exposes the first
//     available provider as the default.
package security
