package domain

// PendingRegistration is a candidate user record that has not been persisted.
// It exists only inside a signed activation ticket and is discarded the moment
// the ticket is consumed or expires.
type PendingRegistration struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phone_number"`
	PasswordHash string `json:"password_hash"`
}
