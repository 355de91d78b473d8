package valueobject

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// GeneratedCodeLength is the length of auto-generated short codes.
	GeneratedCodeLength = 6
	MinCustomCodeLength = 3
	MaxCustomCodeLength = 20

	// codeAlphabet is the 62-symbol alphanumeric alphabet used for
	// generated codes. Case-sensitive.
	codeAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

var shortCodeRegex = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// ShortCode is a value object representing a short link code.
// It is immutable and validated on creation.
type ShortCode struct {
	value string
}

// NewShortCode creates a new ShortCode from a string, validating the format.
func NewShortCode(code string) (ShortCode, error) {
	if err := validation.Validate(code,
		validation.Required.Error("short code is required"),
		validation.Length(MinCustomCodeLength, MaxCustomCodeLength).Error("short code must be 3-20 characters"),
		validation.Match(shortCodeRegex).Error("short code must contain only alphanumeric characters"),
	); err != nil {
		return ShortCode{}, ErrInvalidCode
	}
	return ShortCode{value: code}, nil
}

// GenerateShortCode creates a new random ShortCode of the specified length
// drawn from the alphanumeric alphabet. A non-positive length falls back to
// GeneratedCodeLength.
func GenerateShortCode(length int) (ShortCode, error) {
	if length <= 0 {
		length = GeneratedCodeLength
	}

	code, err := gonanoid.Generate(codeAlphabet, length)
	if err != nil {
		return ShortCode{}, err
	}

	return ShortCode{value: code}, nil
}

// String returns the string representation of the ShortCode.
func (s ShortCode) String() string {
	return s.value
}

// IsEmpty returns true if the ShortCode is empty.
func (s ShortCode) IsEmpty() bool {
	return s.value == ""
}

// Equals compares two ShortCodes for equality.
func (s ShortCode) Equals(other ShortCode) bool {
	return s.value == other.value
}
