package providers

import (
	"context"
	"sync"
	"time"
)

// MockClient is a configurable VisionClient for tests.
type MockClient struct {
	mu sync.Mutex

	// NameValue is returned by Name() (default: "mock").
	NameValue string

	// ModelValue is returned by Model() and reported as the result's
	// ModelUsed (default: "mock-model").
	ModelValue string

	// Response is returned from Complete when Err is nil.
	Response string

	// Err, when set, is returned from Complete.
	Err error

	// CompleteFunc, when set, overrides the canned response entirely.
	CompleteFunc func(ctx context.Context, req *VisionRequest) (*VisionResult, error)

	calls []*VisionRequest
}

// Name returns the mock's identifier.
func (m *MockClient) Name() string {
	if m.NameValue == "" {
		return "mock"
	}
	return m.NameValue
}

// Model returns the mock's model identifier.
func (m *MockClient) Model() string {
	if m.ModelValue == "" {
		return "mock-model"
	}
	return m.ModelValue
}

// Complete records the request and returns the configured response.
func (m *MockClient) Complete(ctx context.Context, req *VisionRequest) (*VisionResult, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	m.mu.Unlock()

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, req)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return &VisionResult{
		Text:          m.Response,
		Provider:      m.Name(),
		ModelUsed:     m.Model(),
		RequestID:     req.RequestID,
		ExecutionTime: time.Millisecond,
	}, nil
}

// Calls returns a copy of all recorded requests.
func (m *MockClient) Calls() []*VisionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*VisionRequest, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns the number of Complete invocations.
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Verify interface
var _ VisionClient = (*MockClient)(nil)
