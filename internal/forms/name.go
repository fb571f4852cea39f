package forms

import "strings"

// ParseName splits a full name into first and last parts. A single
// token becomes the first name with an empty last name.
func ParseName(fullName string) (firstName, lastName string) {
	parts := strings.Fields(strings.TrimSpace(fullName))
	if len(parts) == 0 {
		return "", ""
	}
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
