package entities

import "time"

// User represents a player of the bot.
type User struct {
	ID         int64  // Telegram user ID
	ChatID     int64  // private chat the quizzes are played in
	FirstName  string // used to greet the player, may be empty
	IsActive   bool
	CreatedAt  time.Time
	LastSeenAt time.Time
}

// NewUser creates an active player bound to a chat.
func NewUser(id, chatID int64, firstName string) *User {
	now := time.Now()
	return &User{
		ID:         id,
		ChatID:     chatID,
		FirstName:  firstName,
		IsActive:   true,
		CreatedAt:  now,
		LastSeenAt: now,
	}
}
