package services

import (
	"context"
	"errors"
	"strings"
)

type EmailValidator interface {
	Validate(ctx context.Context, email string) error
}

// LocalValidator is the offline fallback when no reputation service is
// configured. Syntax is already checked by the auth service; this only
// rejects obviously throwaway domains.
type LocalValidator struct{}

func NewLocalValidator() *LocalValidator {
	return &LocalValidator{}
}

var disposableDomains = map[string]bool{
	"mailinator.com":    true,
	"guerrillamail.com": true,
	"10minutemail.com":  true,
	"tempmail.com":      true,
}

func (v *LocalValidator) Validate(_ context.Context, email string) error {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return errors.New("invalid email format")
	}
	domain := strings.ToLower(email[at+1:])
	if disposableDomains[domain] {
		return errors.New("disposable email is not allowed")
	}
	return nil
}
