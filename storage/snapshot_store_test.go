package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/ruteri/inventor-registry/heights"
	"github.com/ruteri/inventor-registry/interfaces"
	"github.com/ruteri/inventor-registry/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testAdmin    interfaces.Identity = "ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM"
	testInventor interfaces.Identity = "ST2CY5V39NHDPWSXMW9QDT3HC3GD6Q6XX4CFRK9AG"
)

func TestSnapshotStore_SaveLoad(t *testing.T) {
	backend, err := NewFileBackend(t.TempDir(), testLogger())
	require.NoError(t, err)

	store, err := NewSnapshotStore(backend, "", testLogger())
	require.NoError(t, err)

	ctx := context.Background()

	_, err = store.Load(ctx, heights.Static(0))
	require.ErrorIs(t, err, ErrContentNotFound)

	r := registry.New(testAdmin, heights.Static(123))
	require.NoError(t, r.RegisterInventor(testInventor, "John Doe", "PhD"))
	require.NoError(t, r.VerifyInventor(testAdmin, testInventor))
	require.NoError(t, store.Save(ctx, r))

	loaded, err := store.Load(ctx, heights.Static(0))
	require.NoError(t, err)
	assert.Equal(t, r.Snapshot(), loaded.Snapshot())
	assert.True(t, loaded.IsVerifiedInventor(testInventor))
}

func TestSnapshotStore_CorruptSnapshot(t *testing.T) {
	backend := &MockSnapshotBackend{name: "mock"}
	backend.On("Get", mock.Anything, DefaultSnapshotKey).Return([]byte("{"), nil)

	store, err := NewSnapshotStore(backend, "", testLogger())
	require.NoError(t, err)

	_, err = store.Load(context.Background(), heights.Static(0))
	assert.ErrorIs(t, err, registry.ErrInvalidSnapshot)
}

func TestSnapshotStore_InvalidKey(t *testing.T) {
	_, err := NewSnapshotStore(&MockSnapshotBackend{}, "../x", testLogger())
	assert.ErrorIs(t, err, ErrInvalidKey)
}

// flakyBackend wraps a backend and rejects writes while failPut is set.
type flakyBackend struct {
	interfaces.SnapshotBackend
	failPut bool
}

func (b *flakyBackend) Put(ctx context.Context, key string, data []byte) error {
	if b.failPut {
		return errors.New("disk full")
	}
	return b.SnapshotBackend.Put(ctx, key, data)
}

func TestSnapshotStore_LoadPicksNewestReplica(t *testing.T) {
	ctx := context.Background()

	first, err := NewFileBackend(t.TempDir(), testLogger())
	require.NoError(t, err)
	second, err := NewFileBackend(t.TempDir(), testLogger())
	require.NoError(t, err)

	lagging := &flakyBackend{SnapshotBackend: first}
	store, err := NewSnapshotStore(NewMultiBackend([]interfaces.SnapshotBackend{lagging, second}, testLogger()), "", testLogger())
	require.NoError(t, err)

	r := registry.New(testAdmin, heights.Static(123))
	require.NoError(t, store.Save(ctx, r))

	// The first replica misses every later write, the save still succeeds
	lagging.failPut = true
	require.NoError(t, r.RegisterInventor(testInventor, "John Doe", "PhD"))
	require.NoError(t, store.Save(ctx, r))
	require.NoError(t, r.VerifyInventor(testAdmin, testInventor))
	require.NoError(t, store.Save(ctx, r))

	loaded, err := store.Load(ctx, heights.Static(0))
	require.NoError(t, err)
	assert.True(t, loaded.IsInventor(testInventor))
	assert.True(t, loaded.IsVerifiedInventor(testInventor))
	assert.Equal(t, r.Snapshot(), loaded.Snapshot())

	// Once the replica catches up the next save goes everywhere again
	lagging.failPut = false
	require.NoError(t, r.TransferAdmin(testAdmin, testInventor))
	require.NoError(t, store.Save(ctx, r))

	fromFirst, err := NewSnapshotStore(first, "", testLogger())
	require.NoError(t, err)
	loaded, err = fromFirst.Load(ctx, heights.Static(0))
	require.NoError(t, err)
	assert.Equal(t, testInventor, loaded.Admin())
}

func TestSnapshotStore_CorruptReplicaFailsLoad(t *testing.T) {
	good := &MockSnapshotBackend{name: "good"}
	good.On("Available", mock.Anything).Return(true)
	good.On("Get", mock.Anything, DefaultSnapshotKey).Return([]byte(`{"revision":1,"admin":"`+string(testAdmin)+`","inventors":[]}`), nil)

	corrupt := &MockSnapshotBackend{name: "corrupt"}
	corrupt.On("Available", mock.Anything).Return(true)
	corrupt.On("Get", mock.Anything, DefaultSnapshotKey).Return([]byte("{"), nil)

	store, err := NewSnapshotStore(NewMultiBackend([]interfaces.SnapshotBackend{good, corrupt}, testLogger()), "", testLogger())
	require.NoError(t, err)

	_, err = store.Load(context.Background(), heights.Static(0))
	assert.ErrorIs(t, err, registry.ErrInvalidSnapshot)
}
