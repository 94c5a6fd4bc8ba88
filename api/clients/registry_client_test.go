package clients

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/ruteri/inventor-registry/heights"
	"github.com/ruteri/inventor-registry/httpserver"
	"github.com/ruteri/inventor-registry/interfaces"
	"github.com/ruteri/inventor-registry/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	admin     interfaces.Identity = "ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM"
	inventor1 interfaces.Identity = "ST2CY5V39NHDPWSXMW9QDT3HC3GD6Q6XX4CFRK9AG"
	inventor2 interfaces.Identity = "ST2JHG361ZXG51QTKY2NQCVBPPRRE2KZB1HR05NNC"
)

func newTestRegistryServer(t *testing.T) *httptest.Server {
	t.Helper()

	reg := registry.New(admin, heights.Static(123))
	handler := httpserver.NewHandler(reg, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	router := chi.NewRouter()
	handler.RegisterRoutes(router)

	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts
}

func TestRegistryClient_Flow(t *testing.T) {
	ts := newTestRegistryServer(t)
	ctx := context.Background()

	inventorClient := NewRegistryClient(ts.URL, inventor1)
	adminClient := NewRegistryClient(ts.URL+"/", admin)
	outsiderClient := NewRegistryClient(ts.URL, inventor2)

	res, err := inventorClient.RegisterInventor(ctx, "John Doe", "PhD in Computer Science, 10 years experience")
	require.NoError(t, err)
	assert.Equal(t, registry.Ok(true), res)

	res, err = inventorClient.RegisterInventor(ctx, "John Doe", "again")
	require.NoError(t, err)
	assert.Equal(t, registry.Err(registry.CodeDuplicateRegistration), res)

	isInventor, err := outsiderClient.IsInventor(ctx, inventor1)
	require.NoError(t, err)
	assert.True(t, isInventor)

	isVerified, err := outsiderClient.IsVerifiedInventor(ctx, inventor1)
	require.NoError(t, err)
	assert.False(t, isVerified)

	res, err = outsiderClient.VerifyInventor(ctx, inventor1)
	require.NoError(t, err)
	assert.Equal(t, registry.CodeUnauthorized, res.Code())

	res, err = adminClient.VerifyInventor(ctx, inventor2)
	require.NoError(t, err)
	assert.Equal(t, registry.CodeNotFound, res.Code())

	res, err = adminClient.VerifyInventor(ctx, inventor1)
	require.NoError(t, err)
	assert.True(t, res.IsOk())

	isVerified, err = outsiderClient.IsVerifiedInventor(ctx, inventor1)
	require.NoError(t, err)
	assert.True(t, isVerified)

	record, err := outsiderClient.Inventor(ctx, inventor1)
	require.NoError(t, err)
	assert.Equal(t, inventor1, record.Identity)
	assert.Equal(t, "John Doe", record.Name)
	assert.Equal(t, uint64(123), record.VerificationHeight)
	assert.True(t, record.IsVerified)

	_, err = outsiderClient.Inventor(ctx, inventor2)
	assert.ErrorIs(t, err, registry.ErrNotFound)

	res, err = adminClient.TransferAdmin(ctx, inventor2)
	require.NoError(t, err)
	assert.True(t, res.IsOk())

	currentAdmin, err := inventorClient.Admin(ctx)
	require.NoError(t, err)
	assert.Equal(t, inventor2, currentAdmin)
}

func TestRegistryClient_MissingCaller(t *testing.T) {
	ts := newTestRegistryServer(t)

	client := NewRegistryClient(ts.URL, "")
	_, err := client.RegisterInventor(context.Background(), "John Doe", "PhD")
	assert.ErrorIs(t, err, ErrUnexpectedResponse)
}

func TestRegistryClient_UnexpectedStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// A well-formed ok result with the wrong status is still rejected
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte(`{"type":"ok","value":true}`))
	}))
	t.Cleanup(ts.Close)

	client := NewRegistryClient(ts.URL, admin)
	_, err := client.TransferAdmin(context.Background(), inventor1)
	assert.ErrorIs(t, err, ErrUnexpectedResponse)

	_, err = client.Admin(context.Background())
	assert.ErrorIs(t, err, ErrUnexpectedResponse)
}

func TestRegistryClient_Unreachable(t *testing.T) {
	ts := newTestRegistryServer(t)
	ts.Close()

	client := NewRegistryClient(ts.URL, admin)
	_, err := client.IsInventor(context.Background(), inventor1)
	assert.Error(t, err)
}
