package accounts

import (
	"rchat/pkg/models"
	"rchat/pkg/utils"
)

// AIAccountID is the fixed id of the built-in AI participant.
const AIAccountID = "gemini-ai"

// AIAccount returns the built-in AI participant. It is not part of the
// registered account table and cannot log in.
func AIAccount() models.Account {
	return models.Account{
		ID:       AIAccountID,
		Name:     "Gemini AI",
		Username: "gemini",
		Avatar:   utils.AvatarURL("gemini"),
		IsAI:     true,
	}
}

// seedAccounts is the default account table written on first access.
// Seed passwords equal the username; real accounts go through the
// password policy in Create.
func seedAccounts() []models.Account {
	names := []struct{ id, name, username string }{
		{"user-1", "Alice", "alice"},
		{"user-2", "Bob", "bob"},
		{"user-3", "Charlie", "charlie"},
		{"user-4", "Diana", "diana"},
	}
	out := make([]models.Account, 0, len(names))
	for _, n := range names {
		out = append(out, models.Account{
			ID:       n.id,
			Name:     n.name,
			Username: n.username,
			Password: n.username,
			Avatar:   utils.AvatarURL(n.username),
		})
	}
	return out
}
