package domain

import (
	"fmt"
	"math/rand"
	"regexp"
)

// Canonical order numbers are FA- followed by six digits. Orders imported
// from the earlier system carry FASH- numbers; both validate.
var (
	orderNumberPattern = regexp.MustCompile(`^FA-\d{6}$`)
	legacyNumberPattern = regexp.MustCompile(`^FASH-\d+$`)
)

// GenerateOrderNumber produces a candidate order number. Uniqueness is the
// storage layer's job (unique index); callers regenerate on collision.
func GenerateOrderNumber() string {
	return fmt.Sprintf("FA-%d", 100000+rand.Intn(900000))
}

// ValidOrderNumber reports whether s is an accepted order number format.
func ValidOrderNumber(s string) bool {
	return orderNumberPattern.MatchString(s) || legacyNumberPattern.MatchString(s)
}
