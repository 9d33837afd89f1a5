package app

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"hotel_admin/internal/wizard"
)

// FormErrors maps a form field to its message, like the wizard's errors.
type FormErrors = wizard.ValidationErrors

var (
	emailRx  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	mobileRx = regexp.MustCompile(`^[6-9][0-9]{9}$`)
)

const passwordSpecials = `!@#$%^&*(),.?":{}|<>`

func IsEmail(s string) bool  { return emailRx.MatchString(s) }
func IsMobile(s string) bool { return mobileRx.MatchString(s) }

// StrongPassword: at least 8 chars with an uppercase letter, a digit and a special char.
func StrongPassword(p string) bool {
	var upper, digit, special bool
	for _, r := range p {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	return utf8.RuneCountInString(p) >= 8 && upper && digit && special
}

// ValidateLogin accepts either an email or a mobile number as identifier.
func ValidateLogin(identifier, password string) FormErrors {
	errs := FormErrors{}
	switch {
	case strings.TrimSpace(identifier) == "":
		errs["identifier"] = "Email or phone number is required"
	case !IsEmail(identifier) && !IsMobile(identifier):
		errs["identifier"] = "Please enter a valid email or 10-digit phone number"
	}
	switch {
	case password == "":
		errs["password"] = "Password is required"
	case !StrongPassword(password):
		errs["password"] = "Password must be ≥8 chars, 1 uppercase, 1 number, 1 special char"
	}
	return errs
}

type AdminForm struct {
	Name            string
	Identifier      string // email or mobile
	Phone           string
	Password        string
	ConfirmPassword string
}

func ValidateAdminForm(f AdminForm) FormErrors {
	errs := FormErrors{}
	switch n := utf8.RuneCountInString(f.Name); {
	case strings.TrimSpace(f.Name) == "":
		errs["adminName"] = "Admin name is required"
	case n < 3:
		errs["adminName"] = "Admin name must be at least 3 characters"
	case n > 100:
		errs["adminName"] = "Admin name must not exceed 100 characters"
	}
	switch {
	case strings.TrimSpace(f.Identifier) == "":
		errs["identifier"] = "Email or phone number is required"
	case !IsEmail(f.Identifier) && !IsMobile(f.Identifier):
		errs["identifier"] = "Enter valid email or 10-digit phone"
	}
	switch {
	case strings.TrimSpace(f.Phone) == "":
		errs["phoneNumber"] = "Phone number is required"
	case !IsMobile(f.Phone):
		errs["phoneNumber"] = "Enter valid 10-digit mobile number"
	}
	switch {
	case f.Password == "":
		errs["password"] = "Password is required"
	case !StrongPassword(f.Password):
		errs["password"] = "≥8 chars, 1 uppercase, 1 number & 1 special"
	}
	switch {
	case f.ConfirmPassword == "":
		errs["confirmPassword"] = "Confirm your password"
	case f.Password != f.ConfirmPassword:
		errs["confirmPassword"] = "Passwords do not match"
	}
	return errs
}
