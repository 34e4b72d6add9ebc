package models

// Account is a registered or seeded identity, human or AI-flagged.
type Account struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
	IsAI     bool   `json:"is_ai,omitempty"`
	// Password is the stored secret, plaintext by design. Only the
	// accounts package may read it; every outward path strips it.
	Password string `json:"password,omitempty"`
}

// Stripped returns a copy of the account with the password removed.
func (a Account) Stripped() Account {
	a.Password = ""
	return a
}
