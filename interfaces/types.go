package interfaces

import (
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ErrEmptyIdentity is returned when an identity string is blank.
var ErrEmptyIdentity = errors.New("identity must not be empty")

// Identity is an opaque, comparable token naming a caller, e.g. an account address.
type Identity string

// ParseIdentity validates and normalizes an identity string.
//
// Hex encoded Ethereum addresses (with or without the 0x prefix, in any case) are
// normalized to their EIP-55 checksum form so one account always maps to a single
// key. Any other non-empty token is used verbatim.
func ParseIdentity(raw string) (Identity, error) {
	clean := strings.TrimSpace(raw)
	if clean == "" {
		return "", ErrEmptyIdentity
	}

	if common.IsHexAddress(clean) {
		return Identity(common.HexToAddress(clean).Hex()), nil
	}

	return Identity(clean), nil
}

// MustParseIdentity is like ParseIdentity but panics on invalid input.
// Intended for constants and tests.
func MustParseIdentity(raw string) Identity {
	id, err := ParseIdentity(raw)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the identity as a string.
func (id Identity) String() string {
	return string(id)
}

// IsZero reports whether the identity is empty.
func (id Identity) IsZero() bool {
	return id == ""
}

// InventorRecord is the registry entry stored for a registered inventor.
type InventorRecord struct {
	// Name is set at registration and never changes.
	Name string `json:"name"`

	// Credentials is set at registration and never changes.
	Credentials string `json:"credentials"`

	// VerificationHeight is the height marker captured at registration time.
	// It is not reassigned when the inventor gets verified.
	VerificationHeight uint64 `json:"verification_height"`

	// IsVerified starts false and can only be flipped to true by the admin.
	IsVerified bool `json:"is_verified"`
}
