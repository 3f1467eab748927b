package practice

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/spellbound/internal/glossary"
	"github.com/abhisek/spellbound/internal/review"
	"github.com/abhisek/spellbound/internal/sentence"
	"github.com/abhisek/spellbound/internal/speech"
	"github.com/abhisek/spellbound/internal/store"
)

// scriptedSentences returns fixed texts and records the requested targets.
type scriptedSentences struct {
	texts   []string
	targets []string
}

func (s *scriptedSentences) Generate(_ context.Context, _ string, target string) sentence.Sentence {
	s.targets = append(s.targets, target)
	text := "The quick brown fox jumps over the lazy dog."
	if len(s.texts) > 0 {
		text, s.texts = s.texts[0], s.texts[1:]
	}
	return sentence.Sentence{Text: text, Hint: "hint"}
}

type fixedRand struct{ f float64 }

func (r fixedRand) Float64() float64 { return r.f }
func (r fixedRand) IntN(int) int     { return 0 }

type fixture struct {
	svc       *Service
	store     *store.Store
	glossary  *glossary.Service
	sentences *scriptedSentences
	speech    *speech.MockSynthesizer
}

func newFixture(t *testing.T, reviewRoll float64, texts ...string) *fixture {
	t.Helper()
	st, err := store.OpenInMemory(strings.ReplaceAll(t.Name(), "/", "_"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	logger, _ := test.NewNullLogger()
	f := &fixture{
		store:     st,
		glossary:  glossary.NewService(st.MistakeRepo(), logger),
		sentences: &scriptedSentences{texts: texts},
		speech:    speech.NewMockSynthesizer(),
	}
	f.svc = NewService(Deps{
		Sentences: f.sentences,
		Speech:    f.speech,
		Glossary:  f.glossary,
		Sessions:  st.SessionRepo(),
		Selector:  review.NewSelector(review.WithRand(fixedRand{f: reviewRoll})),
		Logger:    logger,
	})
	return f
}

func TestCheck_IncorrectRecordsMistakesAndSession(t *testing.T) {
	f := newFixture(t, 1, "A weird rhythm.")
	ctx := context.Background()

	c := f.svc.NewController("ana")
	r, err := c.SelectGrade(ctx, "7th Grade")
	require.NoError(t, err)
	assert.Equal(t, "A weird rhythm.", r.Sentence.Text)
	assert.NotNil(t, r.Audio)
	assert.Equal(t, []string{"A weird rhythm."}, f.speech.Calls)

	out, err := c.Check(ctx, "A wierd rythm")
	require.NoError(t, err)
	assert.False(t, out.Result.Correct)
	assert.Equal(t, 2, out.NewMistakes)

	words := []string{}
	for _, rec := range f.glossary.List(ctx, "ana") {
		words = append(words, rec.Word)
		assert.Equal(t, "7th Grade", rec.Grade)
	}
	assert.Equal(t, []string{"rhythm", "weird"}, words)

	sessions, err := f.store.SessionRepo().List(ctx, "ana", 0)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "A weird rhythm.", sessions[0].Text)
	assert.Equal(t, "A wierd rythm", sessions[0].Attempt)
	assert.False(t, sessions[0].Correct)
}

func TestCheck_EmptyAttemptIgnored(t *testing.T) {
	f := newFixture(t, 1)
	ctx := context.Background()
	c := f.svc.NewController("ana")
	_, err := c.SelectGrade(ctx, "7th Grade")
	require.NoError(t, err)

	_, err = c.Check(ctx, "   ")
	assert.ErrorIs(t, err, ErrEmptyAttempt)

	sessions, _ := f.store.SessionRepo().List(ctx, "ana", 0)
	assert.Empty(t, sessions)
}

func TestCheck_NoRound(t *testing.T) {
	f := newFixture(t, 1)
	_, err := f.svc.NewController("ana").Check(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNoRound)
}

func TestReviewPickTargetsMistake(t *testing.T) {
	f := newFixture(t, 0, "The rhythm was weird.", "Her rhythm was steady.")
	ctx := context.Background()
	c := f.svc.NewController("ana")

	// First round: no mistakes yet, so nothing to review.
	_, err := c.SelectGrade(ctx, "8th Grade")
	require.NoError(t, err)
	assert.Equal(t, "", f.sentences.targets[0])
	_, err = c.Check(ctx, "The rythm was weird.")
	require.NoError(t, err)

	// Second round: the selector always picks, so the word is targeted.
	r, err := c.Continue(ctx)
	require.NoError(t, err)
	assert.Equal(t, "rhythm", r.TargetWord)
	assert.NotEmpty(t, r.TargetMistakeID)
	assert.Equal(t, "rhythm", f.sentences.targets[1])

	out, err := c.Check(ctx, "Her rhythm was steady.")
	require.NoError(t, err)
	assert.True(t, out.Result.Correct)
	require.NotNil(t, out.Target)
	assert.Equal(t, 1, out.Target.MasteryScore)

	sessions, _ := f.store.SessionRepo().List(ctx, "ana", 1)
	assert.Equal(t, "rhythm", sessions[0].TargetWord)
}

func TestMasteryRetiresAfterThreeCorrectReviews(t *testing.T) {
	f := newFixture(t, 0,
		"Weird things.", "It was weird.", "So weird.", "Weird again.")
	ctx := context.Background()
	c := f.svc.NewController("ana")

	_, err := c.SelectGrade(ctx, "7th Grade")
	require.NoError(t, err)
	_, err = c.Check(ctx, "Wierd things.")
	require.NoError(t, err)

	var out *Outcome
	for range 3 {
		r, err := c.Continue(ctx)
		require.NoError(t, err)
		require.Equal(t, "weird", strings.ToLower(r.TargetWord))
		out, err = c.Check(ctx, r.Sentence.Text)
		require.NoError(t, err)
	}
	assert.True(t, out.MasteryRemoved)
	assert.Empty(t, f.glossary.List(ctx, "ana"))
}

func TestAudioFailureResetsGrade(t *testing.T) {
	f := newFixture(t, 1)
	f.speech = speech.NewMockSynthesizer(speech.MockResult{Err: errors.New("tts down")})
	f.svc.speech = f.speech
	ctx := context.Background()

	c := f.svc.NewController("ana")
	_, err := c.SelectGrade(ctx, "7th Grade")
	require.ErrorIs(t, err, ErrAudioUnavailable)
	assert.Equal(t, "", c.Grade())
	assert.Nil(t, c.Round())
	assert.True(t, strings.HasPrefix(err.Error(), GenericErrorMessage))
}

func TestPracticeWord(t *testing.T) {
	f := newFixture(t, 1, "We saw a weird bird.", "Necessary.")
	ctx := context.Background()
	c := f.svc.NewController("ana")

	_, err := c.SelectGrade(ctx, "8th Grade")
	require.NoError(t, err)
	_, err = c.Check(ctx, "We saw a wierd bird.")
	require.NoError(t, err)

	c.SwitchGrade()
	assert.Equal(t, "", c.Grade())

	rec := f.glossary.List(ctx, "ana")[0]
	r, err := c.PracticeWord(ctx, rec)
	require.NoError(t, err)
	assert.Equal(t, "8th Grade", c.Grade())
	assert.Equal(t, "weird", r.TargetWord)
	assert.Equal(t, rec.ID, r.TargetMistakeID)
}

func TestSkipClearsTarget(t *testing.T) {
	f := newFixture(t, 1)
	ctx := context.Background()
	c := f.svc.NewController("ana")
	c.grade = "7th Grade"

	_, err := c.Next(ctx, "rhythm")
	require.NoError(t, err)
	r, err := c.Skip(ctx)
	require.NoError(t, err)
	assert.Empty(t, r.TargetWord)
	assert.Equal(t, []string{"rhythm", ""}, f.sentences.targets)
}
