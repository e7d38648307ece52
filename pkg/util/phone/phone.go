// Package phone normalizes recipient phone numbers for SMS delivery.
package phone

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

var ErrInvalidNumber = errors.New("invalid phone number")

// Normalize parses number in the context of region (ISO 3166 alpha-2, used
// when number has no leading +) and returns it in E.164 form.
func Normalize(number, region string) (string, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return "", ErrInvalidNumber
	}
	region = strings.ToUpper(strings.TrimSpace(region))

	parsed, err := phonenumbers.Parse(number, region)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrInvalidNumber, number, err)
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return "", fmt.Errorf("%w: %s", ErrInvalidNumber, number)
	}
	return phonenumbers.Format(parsed, phonenumbers.E164), nil
}
