package security

import "strconv"

// ClaimType describes the declared type of a claim value.
type ClaimType string

const (
	ClaimTypeString  ClaimType = "STRING"
	ClaimTypeBoolean ClaimType = "BOOLEAN"
	ClaimTypeInteger ClaimType = "INTEGER"
	ClaimTypeLong    ClaimType = "LONG"
	ClaimTypeArray   ClaimType = "ARRAY"
	ClaimTypeObject  ClaimType = "OBJECT"
)

// Claim is a named, typed fact attached to a principal or an authentication
// result. Identity is by Name only. Accessors coerce rather than fail:
// numeric reads fall back to zero, boolean reads parse "true"/"false".
type Claim struct {
	Name  string
	Value any
	Type  ClaimType
}

// NewClaim creates a claim inferring its type from the value.
func NewClaim(name string, value any) Claim {
	return Claim{Name: name, Value: value, Type: inferClaimType(value)}
}

// NewTypedClaim creates a claim with an explicit type.
func NewTypedClaim(name string, value any, claimType ClaimType) Claim {
	return Claim{Name: name, Value: value, Type: claimType}
}

func inferClaimType(value any) ClaimType {
	switch value.(type) {
	case bool:
		return ClaimTypeBoolean
	case int, int32:
		return ClaimTypeInteger
	case int64:
		return ClaimTypeLong
	case []any, []string:
		return ClaimTypeArray
	case map[string]any:
		return ClaimTypeObject
	default:
		return ClaimTypeString
	}
}

// AsString returns the value as a string, formatting non-strings.
func (c Claim) AsString() string {
	switch v := c.Value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		return ""
	}
}

// AsBool returns the value as a bool. String values parse "true"/"false";
// anything else reads as false.
func (c Claim) AsBool() bool {
	switch v := c.Value.(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false
		}
		return b
	default:
		return false
	}
}

// AsInt returns the value as an int, parsing numeric strings and falling
// back to 0 on failure.
func (c Claim) AsInt() int {
	return int(c.AsInt64())
}

// AsInt64 returns the value as an int64, parsing numeric strings and
// falling back to 0 on failure.
func (c Claim) AsInt64() int64 {
	switch v := c.Value.(type) {
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	case float64:
		return int64(v)
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// AsArray returns the value as a slice, or nil when it is not one.
func (c Claim) AsArray() []any {
	switch v := c.Value.(type) {
	case []any:
		return v
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out
	default:
		return nil
	}
}

// AsObject returns the value as a map, or nil when it is not one.
func (c Claim) AsObject() map[string]any {
	if v, ok := c.Value.(map[string]any); ok {
		return v
	}
	return nil
}

// Equal compares claims by name.
func (c Claim) Equal(other Claim) bool {
	return c.Name == other.Name
}
