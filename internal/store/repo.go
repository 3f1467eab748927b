package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a lookup by key matches no row.
var ErrNotFound = errors.New("not found")

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int    // max results (0 = unlimited)
	Purpose string // exact purpose label ("" = any)
}

// User is a learner in the local directory.
type User struct {
	ID        int       `db:"id"`
	Username  string    `db:"username"`
	Email     string    `db:"email"`
	CreatedAt time.Time `db:"created_at"`
}

// Mistake is a persisted glossary entry.
type Mistake struct {
	ID               string    `db:"id"`
	Username         string    `db:"username"`
	Word             string    `db:"word"`
	UserSpelling     string    `db:"user_spelling"`
	OriginalSentence string    `db:"original_sentence"`
	Grade            string    `db:"grade"`
	MasteryScore     int       `db:"mastery_score"`
	Timestamp        time.Time `db:"timestamp"`
	CreatedSeq       int64     `db:"created_seq"`
}

// PracticeSession is one checked sentence in the practice log.
type PracticeSession struct {
	ID         string    `db:"id" json:"id"`
	Sequence   int64     `db:"sequence" json:"-"`
	Timestamp  time.Time `db:"timestamp" json:"timestamp"`
	Username   string    `db:"username" json:"username"`
	Grade      string    `db:"grade" json:"grade"`
	Correct    bool      `db:"correct" json:"correct"`
	Text       string    `db:"text" json:"text"`
	Attempt    string    `db:"attempt" json:"attempt"`
	TargetWord string    `db:"target_word" json:"targetWord,omitempty"`
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request event.
type LLMRequestEvent struct {
	ID           int       `db:"id"`
	Sequence     int64     `db:"sequence"`
	Timestamp    time.Time `db:"timestamp"`
	Provider     string    `db:"provider"`
	Model        string    `db:"model"`
	Purpose      string    `db:"purpose"`
	InputTokens  int       `db:"input_tokens"`
	OutputTokens int       `db:"output_tokens"`
	LatencyMs    int64     `db:"latency_ms"`
	Success      bool      `db:"success"`
	ErrorMessage string    `db:"error_message"`
	RequestBody  string    `db:"request_body"`
	ResponseBody string    `db:"response_body"`
}

// PurposeUsage aggregates LLM usage for one purpose label.
type PurposeUsage struct {
	Purpose      string `db:"purpose"`
	Calls        int    `db:"calls"`
	InputTokens  int    `db:"input_tokens"`
	OutputTokens int    `db:"output_tokens"`
	AvgLatencyMs int64  `db:"avg_latency_ms"`
}

// ModelUsage aggregates LLM token usage for one model.
type ModelUsage struct {
	Model        string `db:"model"`
	Calls        int    `db:"calls"`
	InputTokens  int    `db:"input_tokens"`
	OutputTokens int    `db:"output_tokens"`
}

// UserRepo manages the learner directory.
type UserRepo interface {
	// Create inserts a user. The username must not exist yet.
	Create(ctx context.Context, u *User) error

	// Get returns the user with the exact username, or ErrNotFound.
	Get(ctx context.Context, username string) (*User, error)

	// List returns every user ordered by username.
	List(ctx context.Context) ([]User, error)
}

// MistakeRepo manages glossary entries.
type MistakeRepo interface {
	// List returns a user's mistakes, newest first.
	List(ctx context.Context, username string) ([]Mistake, error)

	// Get returns one mistake by id, or ErrNotFound.
	Get(ctx context.Context, id string) (*Mistake, error)

	// Save inserts a new mistake or updates the existing row with the same id.
	Save(ctx context.Context, m *Mistake) error

	// Delete removes one mistake. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error

	// DeleteAll removes every mistake of a user and returns the count.
	DeleteAll(ctx context.Context, username string) (int64, error)
}

// SessionRepo provides append access to the practice log.
type SessionRepo interface {
	// Append records a checked sentence. ID, Sequence and Timestamp are
	// filled in when empty.
	Append(ctx context.Context, rec *PracticeSession) error

	// List returns a user's records newest first. limit <= 0 means all.
	List(ctx context.Context, username string, limit int) ([]PracticeSession, error)

	// DeleteAll removes every record of a user and returns the count.
	DeleteAll(ctx context.Context, username string) (int64, error)
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns one event, or nil when it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	// LLMUsageByPurpose aggregates calls and tokens per purpose label.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// LLMUsageByModel aggregates calls and tokens per model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}
