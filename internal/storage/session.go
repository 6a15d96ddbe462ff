package storage

import (
	"sync"
	"time"

	"github.com/aliskhannn/health-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/health-quiz-bot/internal/quiz"
)

// ActiveQuiz is a game being played in a chat.
type ActiveQuiz struct {
	Game    *entities.Game
	Session *quiz.Session
	Gate    *quiz.Gate
	UserID  int64
	ChatID  int64

	mu        sync.Mutex
	messageID int
	touchedAt time.Time
}

// NewActiveQuiz creates an entry for a freshly started session.
func NewActiveQuiz(game *entities.Game, session *quiz.Session, gate *quiz.Gate, userID, chatID int64) *ActiveQuiz {
	return &ActiveQuiz{
		Game:    game,
		Session: session,
		Gate:    gate,
		UserID:  userID,
		ChatID:  chatID,
	}
}

// MessageID returns the id of the message the quiz is rendered in.
func (a *ActiveQuiz) MessageID() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.messageID
}

// SetMessageID binds the quiz to a rendered message.
func (a *ActiveQuiz) SetMessageID(id int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.messageID = id
}

func (a *ActiveQuiz) touch(now time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.touchedAt = now
}

func (a *ActiveQuiz) idleSince() time.Time {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.touchedAt
}

// SessionStorage keeps one active quiz per chat in memory.
// Replaced and deleted sessions are disposed so their pending
// transitions never fire.
type SessionStorage struct {
	mu      sync.RWMutex
	quizzes map[int64]*ActiveQuiz
	now     func() time.Time
}

// NewSessionStorage creates a new SessionStorage.
func NewSessionStorage() *SessionStorage {
	return &SessionStorage{
		quizzes: make(map[int64]*ActiveQuiz),
		now:     time.Now,
	}
}

// Store saves the active quiz of a chat, disposing the previous one.
func (s *SessionStorage) Store(chatID int64, q *ActiveQuiz) {
	q.touch(s.now())

	s.mu.Lock()
	prev := s.quizzes[chatID]
	s.quizzes[chatID] = q
	s.mu.Unlock()

	if prev != nil && prev != q {
		prev.Session.Dispose()
	}
}

// Get returns the active quiz of a chat and marks it as used.
func (s *SessionStorage) Get(chatID int64) (*ActiveQuiz, bool) {
	s.mu.RLock()
	q, ok := s.quizzes[chatID]
	s.mu.RUnlock()

	if ok {
		q.touch(s.now())
	}
	return q, ok
}

// Delete disposes and removes the active quiz of a chat.
func (s *SessionStorage) Delete(chatID int64) {
	s.mu.Lock()
	q, ok := s.quizzes[chatID]
	delete(s.quizzes, chatID)
	s.mu.Unlock()

	if ok {
		q.Session.Dispose()
	}
}

// DisposeIdle removes quizzes not used for longer than ttl and
// returns the chats they belonged to.
func (s *SessionStorage) DisposeIdle(ttl time.Duration) []int64 {
	deadline := s.now().Add(-ttl)

	var idle []*ActiveQuiz
	var chats []int64

	s.mu.Lock()
	for chatID, q := range s.quizzes {
		if q.idleSince().Before(deadline) {
			idle = append(idle, q)
			chats = append(chats, chatID)
			delete(s.quizzes, chatID)
		}
	}
	s.mu.Unlock()

	for _, q := range idle {
		q.Session.Dispose()
	}

	return chats
}

// Len returns the number of active quizzes.
func (s *SessionStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.quizzes)
}

// DisposeAll removes every quiz, used on shutdown.
func (s *SessionStorage) DisposeAll() int {
	s.mu.Lock()
	quizzes := s.quizzes
	s.quizzes = make(map[int64]*ActiveQuiz)
	s.mu.Unlock()

	for _, q := range quizzes {
		q.Session.Dispose()
	}

	return len(quizzes)
}
