package storage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/ruteri/inventor-registry/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSnapshotBackend implements interfaces.SnapshotBackend for testing
type MockSnapshotBackend struct {
	mock.Mock
	name string
}

func (m *MockSnapshotBackend) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockSnapshotBackend) Put(ctx context.Context, key string, data []byte) error {
	args := m.Called(ctx, key, data)
	return args.Error(0)
}

func (m *MockSnapshotBackend) Available(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

func (m *MockSnapshotBackend) Name() string {
	return m.name
}

func (m *MockSnapshotBackend) LocationURI() string {
	return "mock://" + m.name
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMultiBackend_Available(t *testing.T) {
	tests := []struct {
		name     string
		backends []bool
		expected bool
	}{
		{
			name:     "all backends available",
			backends: []bool{true, true, true},
			expected: true,
		},
		{
			name:     "some backends available",
			backends: []bool{false, true, false},
			expected: true,
		},
		{
			name:     "no backends available",
			backends: []bool{false, false},
			expected: false,
		},
		{
			name:     "no backends",
			backends: []bool{},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var backends []interfaces.SnapshotBackend
			for _, available := range tt.backends {
				b := &MockSnapshotBackend{name: "mock"}
				b.On("Available", mock.Anything).Return(available).Maybe()
				backends = append(backends, b)
			}

			multi := NewMultiBackend(backends, testLogger())
			assert.Equal(t, tt.expected, multi.Available(context.Background()))
		})
	}
}

func TestMultiBackend_GetFallsBack(t *testing.T) {
	ctx := context.Background()
	data := []byte(`{"admin":"A"}`)

	down := &MockSnapshotBackend{name: "down"}
	down.On("Available", mock.Anything).Return(false)

	failing := &MockSnapshotBackend{name: "failing"}
	failing.On("Available", mock.Anything).Return(true)
	failing.On("Get", mock.Anything, "snap").Return(nil, errors.New("boom"))

	good := &MockSnapshotBackend{name: "good"}
	good.On("Available", mock.Anything).Return(true)
	good.On("Get", mock.Anything, "snap").Return(data, nil)

	multi := NewMultiBackend([]interfaces.SnapshotBackend{down, failing, good}, testLogger())

	got, err := multi.Get(ctx, "snap")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	down.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	failing.AssertExpectations(t)
	good.AssertExpectations(t)
}

func TestMultiBackend_GetNotFound(t *testing.T) {
	a := &MockSnapshotBackend{name: "a"}
	a.On("Available", mock.Anything).Return(true)
	a.On("Get", mock.Anything, "snap").Return(nil, ErrContentNotFound)

	b := &MockSnapshotBackend{name: "b"}
	b.On("Available", mock.Anything).Return(false)

	multi := NewMultiBackend([]interfaces.SnapshotBackend{a, b}, testLogger())

	_, err := multi.Get(context.Background(), "snap")
	assert.ErrorIs(t, err, ErrContentNotFound)
}

func TestMultiBackend_GetAllUnavailable(t *testing.T) {
	a := &MockSnapshotBackend{name: "a"}
	a.On("Available", mock.Anything).Return(false)

	multi := NewMultiBackend([]interfaces.SnapshotBackend{a}, testLogger())

	_, err := multi.Get(context.Background(), "snap")
	assert.ErrorIs(t, err, ErrBackendUnavailable)
	assert.NotErrorIs(t, err, ErrContentNotFound)
}

func TestMultiBackend_PutReplicates(t *testing.T) {
	data := []byte("snapshot")

	a := &MockSnapshotBackend{name: "a"}
	a.On("Available", mock.Anything).Return(true)
	a.On("Put", mock.Anything, "snap", data).Return(nil)

	b := &MockSnapshotBackend{name: "b"}
	b.On("Available", mock.Anything).Return(true)
	b.On("Put", mock.Anything, "snap", data).Return(errors.New("disk full"))

	c := &MockSnapshotBackend{name: "c"}
	c.On("Available", mock.Anything).Return(true)
	c.On("Put", mock.Anything, "snap", data).Return(nil)

	multi := NewMultiBackend([]interfaces.SnapshotBackend{a, b, c}, testLogger())
	require.NoError(t, multi.Put(context.Background(), "snap", data))

	a.AssertExpectations(t)
	b.AssertExpectations(t)
	c.AssertExpectations(t)
}

func TestMultiBackend_PutAllFail(t *testing.T) {
	a := &MockSnapshotBackend{name: "a"}
	a.On("Available", mock.Anything).Return(true)
	a.On("Put", mock.Anything, "snap", mock.Anything).Return(errors.New("disk full"))

	b := &MockSnapshotBackend{name: "b"}
	b.On("Available", mock.Anything).Return(false)

	multi := NewMultiBackend([]interfaces.SnapshotBackend{a, b}, testLogger())

	err := multi.Put(context.Background(), "snap", []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestMultiBackend_LocationURI(t *testing.T) {
	multi := NewMultiBackend([]interfaces.SnapshotBackend{
		&MockSnapshotBackend{name: "a"},
		&MockSnapshotBackend{name: "b"},
	}, testLogger())

	assert.Equal(t, "multi:[mock://a,mock://b]", multi.LocationURI())
	assert.Equal(t, "multi-storage", multi.Name())
}

func TestMultiBackend_GetAll(t *testing.T) {
	ctx := context.Background()
	key := "registry-snapshot.json"

	t.Run("collects every copy and skips failures", func(t *testing.T) {
		b1 := &MockSnapshotBackend{name: "b1"}
		b1.On("Available", mock.Anything).Return(true)
		b1.On("Get", mock.Anything, key).Return([]byte("old"), nil)

		b2 := &MockSnapshotBackend{name: "b2"}
		b2.On("Available", mock.Anything).Return(true)
		b2.On("Get", mock.Anything, key).Return(nil, errors.New("timeout"))

		b3 := &MockSnapshotBackend{name: "b3"}
		b3.On("Available", mock.Anything).Return(false)

		b4 := &MockSnapshotBackend{name: "b4"}
		b4.On("Available", mock.Anything).Return(true)
		b4.On("Get", mock.Anything, key).Return([]byte("new"), nil)

		multi := NewMultiBackend([]interfaces.SnapshotBackend{b1, b2, b3, b4}, testLogger())
		copies, err := multi.GetAll(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, [][]byte{[]byte("old"), []byte("new")}, copies)
	})

	t.Run("not found everywhere", func(t *testing.T) {
		b1 := &MockSnapshotBackend{name: "b1"}
		b1.On("Available", mock.Anything).Return(true)
		b1.On("Get", mock.Anything, key).Return(nil, ErrContentNotFound)

		b2 := &MockSnapshotBackend{name: "b2"}
		b2.On("Available", mock.Anything).Return(false)

		multi := NewMultiBackend([]interfaces.SnapshotBackend{b1, b2}, testLogger())
		_, err := multi.GetAll(ctx, key)
		assert.ErrorIs(t, err, ErrContentNotFound)
	})

	t.Run("missing on one backend and failing on another", func(t *testing.T) {
		b1 := &MockSnapshotBackend{name: "b1"}
		b1.On("Available", mock.Anything).Return(true)
		b1.On("Get", mock.Anything, key).Return(nil, ErrContentNotFound)

		b2 := &MockSnapshotBackend{name: "b2"}
		b2.On("Available", mock.Anything).Return(true)
		b2.On("Get", mock.Anything, key).Return(nil, errors.New("timeout"))

		multi := NewMultiBackend([]interfaces.SnapshotBackend{b1, b2}, testLogger())
		_, err := multi.GetAll(ctx, key)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrContentNotFound)
	})
}
