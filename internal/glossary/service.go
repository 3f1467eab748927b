package glossary

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/spellbound/internal/grading"
	"github.com/abhisek/spellbound/internal/store"
)

// Update is the result of one checked sentence as seen by the glossary.
type Update struct {
	Username string
	Correct  bool
	TargetID string
	Diff     []grading.WordDiff
	Sentence string
	Grade    string
}

// Applied reports what an Update did to the glossary.
type Applied struct {
	// Target is the reviewed record after the update, nil when there was
	// no target or it was retired.
	Target *Record

	// MasteryRemoved is set when a correct review retired the target.
	MasteryRemoved bool

	// Added counts words that were new to the glossary.
	Added int
}

// Service persists the glossary through a store.MistakeRepo. List treats a
// read failure as an empty glossary so screens can still render; Apply
// returns it instead.
type Service struct {
	repo   store.MistakeRepo
	logger logrus.FieldLogger
	now    func() time.Time
	newID  func() string
}

// NewService creates a glossary service.
func NewService(repo store.MistakeRepo, logger logrus.FieldLogger) *Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Service{
		repo:   repo,
		logger: logger.WithField("component", "glossary"),
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
}

// List returns the user's glossary, newest first.
func (s *Service) List(ctx context.Context, username string) []Record {
	rows, err := s.repo.List(ctx, username)
	if err != nil {
		s.logger.WithError(err).WithField("user", username).Warn("load glossary")
		return nil
	}
	return lo.Map(rows, func(m store.Mistake, _ int) Record { return fromRow(m) })
}

// Get returns one record by id.
func (s *Service) Get(ctx context.Context, id string) (*Record, error) {
	m, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	rec := fromRow(*m)
	return &rec, nil
}

// Apply runs the mastery update for a checked sentence and writes the
// changed records back. A failed read aborts the update before anything is
// written.
func (s *Service) Apply(ctx context.Context, u Update) (Applied, error) {
	rows, err := s.repo.List(ctx, u.Username)
	if err != nil {
		return Applied{}, fmt.Errorf("load glossary for %q: %w", u.Username, err)
	}
	before := lo.Map(rows, func(m store.Mistake, _ int) Record { return fromRow(m) })

	var (
		after []Record
		res   Applied
	)
	if u.Correct {
		if u.TargetID == "" {
			return res, nil
		}
		after, res.MasteryRemoved = RecordCorrect(before, u.TargetID)
	} else {
		after = RecordIncorrect(before, u.Username, u.Diff, u.Sentence, u.Grade, s.now(), s.newID)
	}

	if err := s.sync(ctx, before, after); err != nil {
		return res, err
	}

	prev := lo.KeyBy(before, func(r Record) string { return r.ID })
	for _, r := range after {
		if _, ok := prev[r.ID]; !ok {
			res.Added++
		}
		if u.TargetID != "" && r.ID == u.TargetID {
			rec := r
			res.Target = &rec
		}
	}

	s.logger.WithFields(logrus.Fields{
		"user":    u.Username,
		"correct": u.Correct,
		"added":   res.Added,
		"retired": res.MasteryRemoved,
	}).Debug("glossary updated")
	return res, nil
}

// sync writes the difference between two snapshots of a user's list.
func (s *Service) sync(ctx context.Context, before, after []Record) error {
	prev := lo.KeyBy(before, func(r Record) string { return r.ID })
	next := lo.KeyBy(after, func(r Record) string { return r.ID })

	for id := range prev {
		if _, ok := next[id]; ok {
			continue
		}
		if err := s.repo.Delete(ctx, id); err != nil {
			return err
		}
	}

	// Oldest first, so newly prepended records get the highest sequence.
	for i := len(after) - 1; i >= 0; i-- {
		r := after[i]
		if old, ok := prev[r.ID]; ok && old == r {
			continue
		}
		row := toRow(r)
		if err := s.repo.Save(ctx, &row); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes one record.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Clear removes the user's whole glossary.
func (s *Service) Clear(ctx context.Context, username string) (int64, error) {
	return s.repo.DeleteAll(ctx, username)
}

func fromRow(m store.Mistake) Record {
	return Record{
		ID:               m.ID,
		Username:         m.Username,
		Word:             m.Word,
		UserSpelling:     m.UserSpelling,
		OriginalSentence: m.OriginalSentence,
		Timestamp:        m.Timestamp,
		Grade:            m.Grade,
		MasteryScore:     m.MasteryScore,
		seq:              m.CreatedSeq,
	}
}

func toRow(r Record) store.Mistake {
	return store.Mistake{
		ID:               r.ID,
		Username:         r.Username,
		Word:             r.Word,
		UserSpelling:     r.UserSpelling,
		OriginalSentence: r.OriginalSentence,
		Grade:            r.Grade,
		MasteryScore:     r.MasteryScore,
		Timestamp:        r.Timestamp,
		CreatedSeq:       r.seq,
	}
}
