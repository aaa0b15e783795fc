package skillspace

import "fmt"

// InviteError carries what the platform answered. Status 0 means the call
// never made it (network error or timeout).
type InviteError struct {
	Status int
	Body   string
}

func (e *InviteError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("invite failed: %s", e.Body)
	}
	return fmt.Sprintf("invite failed: %d | %s", e.Status, e.Body)
}
