// Package contact defines the candidate record offered by the selector, plus
// a mock generator and a file loader for host applications and the CLI.
package contact

import "fmt"

// Contact is a selectable candidate. IDs are expected to be unique within a
// list; the selector indexes rows by position, so duplicates still render
// but make the host's selection callback ambiguous.
type Contact struct {
	ID    string `json:"id" yaml:"id" toml:"id"`
	Name  string `json:"name" yaml:"name" toml:"name"`
	Email string `json:"email" yaml:"email" toml:"email"`
}

// Label is the human-readable form shown for a committed selection and used
// as the accessible name of an option.
func (c Contact) Label() string {
	return fmt.Sprintf("%s (%s)", c.Name, c.Email)
}

// FindByID returns the first contact whose ID matches id.
func FindByID(contacts []Contact, id string) (Contact, bool) {
	for _, c := range contacts {
		if c.ID == id {
			return c, true
		}
	}
	return Contact{}, false
}
