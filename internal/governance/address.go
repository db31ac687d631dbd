package governance

import (
	"fmt"
	"regexp"
	"strings"
)

// Address identifies a consortium participant: an airline, the owner or a
// delegate process. Always stored in lower-case 0x-prefixed hex form.
type Address string

var addressPattern = regexp.MustCompile(`^0x[0-9a-f]{40}$`)

// ParseAddress validates and normalizes a caller supplied address.
func ParseAddress(s string) (Address, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if !addressPattern.MatchString(normalized) {
		return "", fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	return Address(normalized), nil
}

// MustParseAddress is ParseAddress for constants and tests.
func MustParseAddress(s string) Address {
	addr, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return addr
}

func (a Address) String() string { return string(a) }

// IsZero reports whether the address was never set.
func (a Address) IsZero() bool { return a == "" }
