package speech

import (
	"context"
	"errors"
	"sync"
)

// MockSynthesizer is a deterministic Synthesizer for testing. It returns
// queued results in FIFO order and then repeats Default.
type MockSynthesizer struct {
	mu      sync.Mutex
	queue   []MockResult
	Default MockResult
	Calls   []string
}

// MockResult is one canned outcome.
type MockResult struct {
	Audio *Audio
	Err   error
}

// NewMockSynthesizer creates a mock returning short silence unless
// results are queued.
func NewMockSynthesizer(results ...MockResult) *MockSynthesizer {
	return &MockSynthesizer{
		queue:   results,
		Default: MockResult{Audio: NewAudio(make([]byte, 480))},
	}
}

func (m *MockSynthesizer) Synthesize(_ context.Context, text string) (*Audio, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, text)
	r := m.Default
	if len(m.queue) > 0 {
		r = m.queue[0]
		m.queue = m.queue[1:]
	}
	if r.Err != nil {
		return nil, r.Err
	}
	if r.Audio == nil {
		return nil, errors.New("mock: no audio configured")
	}
	return r.Audio, nil
}

// CallCount returns the number of Synthesize calls made.
func (m *MockSynthesizer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
