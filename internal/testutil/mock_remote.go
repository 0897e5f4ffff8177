// mock_remote.go - Mock inference service client for testing
package testutil

import (
	"context"
	"io"
	"sync"

	"github.com/studyquery/backend/internal/models"
	"github.com/studyquery/backend/internal/remote"
)

// MockRemote implements remote.Client for testing. Responses are set per
// call site; unset responses return zero-value successes.
type MockRemote struct {
	mu sync.Mutex

	UploadResult *remote.UploadResult
	UploadErr    error
	QueryResult  *remote.QueryResult
	QueryErr     error

	// Block, when non-nil, is closed by the test to release in-flight
	// calls. Lets tests observe the transferring/submitting states.
	Block chan struct{}

	uploadCalls []UploadCall
	queryCalls  []string
}

// UploadCall records one UploadDocument invocation.
type UploadCall struct {
	Role models.SlotRole
	Name string
	Data []byte
}

// NewMockRemote creates a mock that succeeds with empty results.
func NewMockRemote() *MockRemote {
	return &MockRemote{
		UploadResult: &remote.UploadResult{},
		QueryResult:  &remote.QueryResult{},
	}
}

func (m *MockRemote) UploadDocument(ctx context.Context, role models.SlotRole, name string, r io.Reader) (*remote.UploadResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.uploadCalls = append(m.uploadCalls, UploadCall{Role: role, Name: name, Data: data})
	block := m.Block
	m.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UploadErr != nil {
		return nil, m.UploadErr
	}
	return m.UploadResult, nil
}

func (m *MockRemote) Query(ctx context.Context, question string) (*remote.QueryResult, error) {
	m.mu.Lock()
	m.queryCalls = append(m.queryCalls, question)
	block := m.Block
	m.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.QueryErr != nil {
		return nil, m.QueryErr
	}
	return m.QueryResult, nil
}

// UploadCalls returns a copy of recorded upload invocations.
func (m *MockRemote) UploadCalls() []UploadCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]UploadCall(nil), m.uploadCalls...)
}

// QueryCalls returns a copy of recorded query questions.
func (m *MockRemote) QueryCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.queryCalls...)
}

// Ensure MockRemote implements remote.Client
var _ remote.Client = (*MockRemote)(nil)
