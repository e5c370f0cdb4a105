package mocks

import (
	"context"
	"sync"
)

// PublishCall records parameters passed to Publish
type PublishCall struct {
	Key   string
	Value []byte
}

// MockPublisher is a catalog.Publisher that records published messages.
type MockPublisher struct {
	mu sync.Mutex

	PublishCalls []PublishCall
	PublishErr   error
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) Publish(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PublishCalls = append(m.PublishCalls, PublishCall{Key: key, Value: value})
	return m.PublishErr
}
