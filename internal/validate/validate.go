package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// FieldErrors maps a field name to a human-readable message; handlers return
// it verbatim in a 400 body.
type FieldErrors map[string]string

func (fe FieldErrors) Add(field, message string) {
	if _, taken := fe[field]; !taken {
		fe[field] = message
	}
}

func (fe FieldErrors) OK() bool {
	return len(fe) == 0
}

func NonBlank(fe FieldErrors, field, val string) {
	if strings.TrimSpace(val) == "" {
		fe.Add(field, fmt.Sprintf("%s is required", field))
	}
}

func Length(fe FieldErrors, field, val string, minLen, maxLen int) {
	length := utf8.RuneCountInString(val)
	if length < minLen || length > maxLen {
		fe.Add(field, fmt.Sprintf("%s must be between %d and %d characters", field, minLen, maxLen))
	}
}

func Email(fe FieldErrors, field, val string) {
	if !emailRegex.MatchString(val) {
		fe.Add(field, "invalid email format")
	}
}

func PositiveQuantity(fe FieldErrors, field string, val int) {
	if val <= 0 {
		fe.Add(field, fmt.Sprintf("%s must be greater than zero", field))
	}
}

func Register(username, email, password, firstName, lastName string) FieldErrors {
	fe := FieldErrors{}
	NonBlank(fe, "username", username)
	Length(fe, "username", username, 3, 50)
	NonBlank(fe, "email", email)
	Email(fe, "email", email)
	NonBlank(fe, "password", password)
	Length(fe, "password", password, 6, 72)
	NonBlank(fe, "firstName", firstName)
	NonBlank(fe, "lastName", lastName)
	return fe
}

func Login(username, password string) FieldErrors {
	fe := FieldErrors{}
	NonBlank(fe, "username", username)
	NonBlank(fe, "password", password)
	return fe
}

func Checkout(shippingAddress, paymentMethod string) FieldErrors {
	fe := FieldErrors{}
	NonBlank(fe, "shippingAddress", shippingAddress)
	NonBlank(fe, "paymentMethod", paymentMethod)
	return fe
}
