package models

// TapirUser represents a login account row.
// Permissions are stored as a text array and decoded by the repository.
type TapirUser struct {
	UserID            string   `json:"userID" db:"user_id"`
	Username          string   `json:"username" db:"username"`
	PasswordHash      *string  `json:"-" db:"password_hash"`
	FirstName         string   `json:"firstName" db:"first_name"`
	LastName          string   `json:"lastName" db:"last_name"`
	Email             string   `json:"email" db:"email"`
	PhoneNumber       string   `json:"phoneNumber" db:"phone_number"`
	Street            string   `json:"street" db:"street"`
	Postcode          string   `json:"postcode" db:"postcode"`
	City              string   `json:"city" db:"city"`
	Country           string   `json:"country" db:"country"`
	PreferredLanguage string   `json:"preferredLanguage" db:"preferred_language"`
	Permissions       []string `json:"permissions" db:"permissions"`
	AuditFields
}
