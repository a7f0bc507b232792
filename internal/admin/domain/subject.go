package domain

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidSubject reports an identifier that is neither a numeric user id
// nor an email address.
var ErrInvalidSubject = errors.New("domain: invalid subject identifier")

// SubjectRef is a tagged reference to a user supplied at the trust
// boundary: either a numeric user id or a login email. It exists so the
// "id or email" ambiguity is resolved exactly once, at login; everything
// past that point sees only the canonical numeric id. A numeric-looking
// string is always the id form, never sniffed as an email local part.
type SubjectRef struct {
	numericID int64
	email     string
}

// NumericID builds a SubjectRef from a canonical user id.
func NumericID(id int64) SubjectRef {
	return SubjectRef{numericID: id}
}

// EmailAddress builds a SubjectRef from a login email.
func EmailAddress(email string) SubjectRef {
	return SubjectRef{email: strings.ToLower(strings.TrimSpace(email))}
}

// ParseSubjectRef classifies a raw identifier. Pure decimal strings are
// numeric ids; anything containing "@" is an email; everything else is
// rejected.
func ParseSubjectRef(raw string) (SubjectRef, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return SubjectRef{}, ErrInvalidSubject
	}
	if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
		return NumericID(id), nil
	}
	if strings.Contains(raw, "@") {
		return EmailAddress(raw), nil
	}
	return SubjectRef{}, ErrInvalidSubject
}

// ID returns the numeric id form, if this reference carries one.
func (s SubjectRef) ID() (int64, bool) {
	return s.numericID, s.numericID > 0
}

// Email returns the email form, if this reference carries one.
func (s SubjectRef) Email() (string, bool) {
	return s.email, s.email != ""
}
