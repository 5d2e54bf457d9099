package annotation

import (
	"github.com/stretchr/testify/mock"
)

// MockStore implements the Store interface for testing
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Text() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockStore) CoveredText(s Span) string {
	args := m.Called(s)
	return args.String(0)
}

func (m *MockStore) Sentences() []*Sentence {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]*Sentence)
}

func (m *MockStore) Timexes(kinds ...Kind) []*Timex {
	args := m.Called(kinds)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]*Timex)
}

func (m *MockStore) AddTimex(t *Timex) error {
	args := m.Called(t)
	return args.Error(0)
}

func (m *MockStore) RemoveTimex(t *Timex) error {
	args := m.Called(t)
	return args.Error(0)
}

// UpdateValue records the call and applies the new value, so code under test
// observes the mutation the way it would with a real store.
func (m *MockStore) UpdateValue(t *Timex, value string) {
	m.Called(t, value)
	t.Value = value
}

func (m *MockStore) UpdateEmptyValue(t *Timex, value string) {
	m.Called(t, value)
	t.EmptyValue = value
}

func (m *MockStore) Intervals() []*Interval {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]*Interval)
}

func (m *MockStore) IntervalsWithin(container Span) []*Interval {
	args := m.Called(container)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]*Interval)
}

func (m *MockStore) AddInterval(i *Interval) error {
	args := m.Called(i)
	return args.Error(0)
}

func (m *MockStore) RemoveInterval(i *Interval) error {
	args := m.Called(i)
	return args.Error(0)
}

// --- Helper methods for creating test data ---

// NewMockTimex creates a test Timex with the given location, kind and value.
func NewMockTimex(id string, begin, end int, kind Kind, value string) *Timex {
	return &Timex{
		Span:        Span{Begin: begin, End: end},
		Kind:        kind,
		Value:       value,
		ID:          id,
		FoundByRule: "mock_rule",
		SentenceID:  "s0",
	}
}

var _ Store = (*MockStore)(nil)
