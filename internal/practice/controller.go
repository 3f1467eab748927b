package practice

import (
	"context"

	"github.com/abhisek/spellbound/internal/glossary"
)

// Controller tracks one learner's position in the practice flow.
type Controller struct {
	svc      *Service
	username string
	grade    string
	round    *Round
}

// NewController starts a flow for username with no grade selected.
func (s *Service) NewController(username string) *Controller {
	return &Controller{svc: s, username: username}
}

// Username returns the learner this controller serves.
func (c *Controller) Username() string { return c.username }

// Grade returns the selected grade, or "".
func (c *Controller) Grade() string { return c.grade }

// Round returns the active round, or nil.
func (c *Controller) Round() *Round { return c.round }

// SelectGrade picks a grade and starts an untargeted round.
func (c *Controller) SelectGrade(ctx context.Context, grade string) (*Round, error) {
	c.grade = grade
	return c.Next(ctx, "")
}

// Next starts a new round for the current grade. On failure the grade
// selection is reset so the learner is sent back to pick again.
func (c *Controller) Next(ctx context.Context, targetWord string) (*Round, error) {
	c.round = nil
	r, err := c.svc.NewRound(ctx, c.username, c.grade, targetWord)
	if err != nil {
		c.grade = ""
		return nil, err
	}
	c.round = r
	return r, nil
}

// Check grades attempt against the active round.
func (c *Controller) Check(ctx context.Context, attempt string) (*Outcome, error) {
	if c.round == nil {
		return nil, ErrNoRound
	}
	return c.svc.Check(ctx, c.round, attempt)
}

// Skip drops the active round without grading and starts an untargeted one.
func (c *Controller) Skip(ctx context.Context) (*Round, error) {
	return c.Next(ctx, "")
}

// Continue moves on after feedback. Any review target is cleared.
func (c *Controller) Continue(ctx context.Context) (*Round, error) {
	return c.Next(ctx, "")
}

// PracticeWord starts a round built around a glossary entry, in the grade
// the word was first missed at.
func (c *Controller) PracticeWord(ctx context.Context, rec glossary.Record) (*Round, error) {
	c.grade = rec.Grade
	return c.Next(ctx, rec.Word)
}

// SwitchGrade clears the grade and the active round.
func (c *Controller) SwitchGrade() {
	c.grade = ""
	c.round = nil
}
