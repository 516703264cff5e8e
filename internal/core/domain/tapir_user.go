package domain

// TapirUser is a login account. A ShareOwner may optionally be linked to one;
// once linked, the account becomes the authoritative source for the member's
// identity fields.
type TapirUser struct {
	UserID            string       `json:"userID"` // Primary key (UUID)
	Username          string       `json:"username"`
	PasswordHash      *string      `json:"-"`
	FirstName         string       `json:"firstName"`
	LastName          string       `json:"lastName"`
	Email             string       `json:"email"`
	PhoneNumber       string       `json:"phoneNumber"`
	Street            string       `json:"street"`
	Postcode          string       `json:"postcode"`
	City              string       `json:"city"`
	Country           string       `json:"country"`
	PreferredLanguage string       `json:"preferredLanguage"`
	Permissions       []Permission `json:"permissions"`
	AuditFields
}
