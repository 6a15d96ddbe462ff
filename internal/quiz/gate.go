package quiz

import (
	"context"
	"fmt"
)

// Navigator moves the host to another screen.
type Navigator interface {
	Navigate(ctx context.Context, target string) error
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context, target string) error

func (f NavigatorFunc) Navigate(ctx context.Context, target string) error {
	return f(ctx, target)
}

// Gate exposes the "proceed" affordance of a session. It stays disabled
// until the session is finished.
type Gate struct {
	session   *Session
	navigator Navigator
	target    string
}

// NewGate creates a gate that hands off to target once session is finished.
func NewGate(session *Session, navigator Navigator, target string) *Gate {
	return &Gate{
		session:   session,
		navigator: navigator,
		target:    target,
	}
}

// Target returns the screen the gate navigates to.
func (g *Gate) Target() string {
	return g.target
}

// Enabled reports whether Proceed would navigate.
func (g *Gate) Enabled() bool {
	return g.target != "" && g.session.Finished()
}

// Proceed hands control to the navigator.
func (g *Gate) Proceed(ctx context.Context) error {
	if !g.session.Finished() {
		return ErrNotFinished
	}
	if g.target == "" {
		return ErrNoTarget
	}
	if err := g.navigator.Navigate(ctx, g.target); err != nil {
		return fmt.Errorf("navigate to %s: %w", g.target, err)
	}
	return nil
}
