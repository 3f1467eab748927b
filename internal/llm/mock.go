package llm

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"sync"
)

// MockResponse is one scripted answer of a MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage

	// StopReason defaults to StopEnd.
	StopReason string

	// Err, when set, is returned instead of an answer.
	Err error
}

// MockCall is one request a MockProvider received.
type MockCall struct {
	Request Request
	Tags    Tags
}

// MockProvider serves scripted answers in order. Answers go through the
// same stop-reason, schema and Accept checks as a real provider's, so a
// malformed script surfaces the error a caller would see in production.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	calls     []MockCall
}

// NewMockProvider creates a MockProvider with the given script.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// Generate returns the next scripted answer, or ErrProviderUnavailable once
// the script is used up.
func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	m.calls = append(m.calls, MockCall{Request: req, Tags: TagsFrom(ctx)})
	if len(m.responses) == 0 {
		m.mu.Unlock()
		return nil, &ErrProviderUnavailable{Err: errors.New("mock: script exhausted")}
	}
	next := m.responses[0]
	m.responses = m.responses[1:]
	m.mu.Unlock()

	if next.Err != nil {
		return nil, next.Err
	}

	stop := next.StopReason
	if stop == "" {
		stop = StopEnd
	}
	if err := checkResponse(req, next.Content, stop); err != nil {
		return nil, err
	}

	return &Response{
		Content:    next.Content,
		Usage:      next.Usage,
		Model:      "mock",
		StopReason: stop,
	}, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends an answer to the script.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// Calls returns the requests received so far.
func (m *MockProvider) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.calls)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
