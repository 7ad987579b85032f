package models

// Parent can approve or disapprove claims and redemptions for the kids in
// AssociatedKids. PasswordHash is a bcrypt hash checked at login.
type Parent struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Username       string   `json:"username"`
	PasswordHash   string   `json:"password_hash,omitempty"`
	AssociatedKids []string `json:"associated_kids"`
	NotifyEnabled  bool     `json:"notify_enabled"`
}
