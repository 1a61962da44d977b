package core

import (
	"fmt"
	"net/mail"
	"strings"
)

// Contact is the contact record kept for a region.
// An empty string means the field is absent.
type Contact struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// IsEmpty reports whether all three fields are absent.
// Storing an empty contact through Put is the same as deleting the region's entry.
func (c Contact) IsEmpty() bool {
	return c.Name == "" && c.Phone == "" && c.Email == ""
}

// Validate checks the fields that carry a format. Only the email address is
// checked; phone numbers are free text.
func (c Contact) Validate() error {
	if c.Email == "" {
		return nil
	}
	addr, err := mail.ParseAddress(c.Email)
	if err != nil || addr.Address != strings.TrimSpace(c.Email) {
		return newError(KindInvalidContact, fmt.Sprintf("invalid email address %q", c.Email), err)
	}
	return nil
}

// County pairs a region key with its contact. Contact is nil when the region
// has no contact on file.
type County struct {
	ID      string   `json:"id"`
	Contact *Contact `json:"contact"`
}

// cloneContacts returns a shallow copy of a contact map. Contact is a value
// type so the copy shares nothing with the source.
func cloneContacts(src map[string]Contact) map[string]Contact {
	dst := make(map[string]Contact, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
