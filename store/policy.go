package store

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// PasswordRule checks one policy requirement and returns a human-readable
// rejection description when the password does not satisfy it.
type PasswordRule func(password string) *Rejection

// PasswordPolicy is an ordered list of rules. It is built once at startup
// and read-only afterwards.
type PasswordPolicy struct {
	rules []PasswordRule
}

// NewPasswordPolicy builds a policy from the given rules, evaluated in order.
func NewPasswordPolicy(rules ...PasswordRule) *PasswordPolicy {
	return &PasswordPolicy{rules: rules}
}

// DefaultPasswordPolicy mirrors the account requirements enforced at
// registration: minimum length plus digit, lowercase, uppercase, and
// non-alphanumeric characters.
func DefaultPasswordPolicy() *PasswordPolicy {
	return NewPasswordPolicy(
		MinLength(6),
		RequireDigit(),
		RequireLowercase(),
		RequireUppercase(),
		RequireNonAlphanumeric(),
	)
}

// Check runs every rule and returns all rejections in rule order. An empty
// result means the password is acceptable.
func (p *PasswordPolicy) Check(password string) []Rejection {
	var rejections []Rejection
	for _, rule := range p.rules {
		if r := rule(password); r != nil {
			rejections = append(rejections, *r)
		}
	}
	return rejections
}

func MinLength(n int) PasswordRule {
	return func(password string) *Rejection {
		// Characters, not bytes: a multi-byte password must not satisfy the
		// minimum early.
		if utf8.RuneCountInString(password) < n {
			return &Rejection{Description: fmt.Sprintf("Passwords must be at least %d characters.", n)}
		}
		return nil
	}
}

func RequireDigit() PasswordRule {
	return requireClass(unicode.IsDigit, "Passwords must have at least one digit ('0'-'9').")
}

func RequireLowercase() PasswordRule {
	return requireClass(unicode.IsLower, "Passwords must have at least one lowercase ('a'-'z').")
}

func RequireUppercase() PasswordRule {
	return requireClass(unicode.IsUpper, "Passwords must have at least one uppercase ('A'-'Z').")
}

func RequireNonAlphanumeric() PasswordRule {
	return requireClass(func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}, "Passwords must have at least one non alphanumeric character.")
}

func requireClass(match func(rune) bool, description string) PasswordRule {
	return func(password string) *Rejection {
		for _, r := range password {
			if match(r) {
				return nil
			}
		}
		return &Rejection{Description: description}
	}
}
