package entities

import "time"

// Wallet aggregates the rewards a user has collected across games.
type Wallet struct {
	UserID            int64
	Coins             int // total coins earned
	SessionsCompleted int // number of finished runs
	Celebrations      int // runs that met the celebration threshold
	CorrectAnswers    int // correct answers across all runs
	TotalAnswers      int // answers across all runs
	UpdatedAt         time.Time
}

// NewWallet creates an empty wallet for a user.
func NewWallet(userID int64) *Wallet {
	return &Wallet{UserID: userID}
}

// Accuracy returns the share of correct answers in percent.
func (w *Wallet) Accuracy() float64 {
	if w.TotalAnswers == 0 {
		return 0
	}
	return float64(w.CorrectAnswers) / float64(w.TotalAnswers) * 100
}
