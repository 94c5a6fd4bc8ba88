package main

import (
	"bytes"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
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
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	reg := registry.New(admin, heights.Static(123))
	router := chi.NewRouter()
	httpserver.NewHandler(reg, nil, slog.New(slog.NewTextHandler(io.Discard, nil))).RegisterRoutes(router)

	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts
}

func run(t *testing.T, serverURL string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	argv := append([]string{"registry-cli", "--server-addr", serverURL}, args...)
	err := newApp(&out).Run(argv)
	return strings.TrimSpace(out.String()), err
}

func TestCLI_Flow(t *testing.T) {
	ts := newTestServer(t)

	out, err := run(t, ts.URL, "--caller", inventor1.String(), "register", "--name", "John Doe", "--credentials", "PhD")
	require.NoError(t, err)
	assert.Equal(t, `{"type":"ok","value":true}`, out)

	out, err = run(t, ts.URL, "is-inventor", inventor1.String())
	require.NoError(t, err)
	assert.Equal(t, "true", out)

	out, err = run(t, ts.URL, "--caller", inventor1.String(), "verify", inventor1.String())
	assert.ErrorIs(t, err, errRejected)
	assert.ErrorIs(t, err, registry.ErrUnauthorized)
	assert.Equal(t, `{"type":"err","value":403}`, out)

	out, err = run(t, ts.URL, "--caller", admin.String(), "verify", inventor1.String())
	require.NoError(t, err)
	assert.Equal(t, `{"type":"ok","value":true}`, out)

	out, err = run(t, ts.URL, "is-verified", inventor1.String())
	require.NoError(t, err)
	assert.Equal(t, "true", out)

	out, err = run(t, ts.URL, "get", inventor1.String())
	require.NoError(t, err)
	assert.JSONEq(t, `{"identity":"ST2CY5V39NHDPWSXMW9QDT3HC3GD6Q6XX4CFRK9AG","name":"John Doe","credentials":"PhD","verification_height":123,"is_verified":true}`, out)

	out, err = run(t, ts.URL, "--caller", admin.String(), "transfer-admin", inventor1.String())
	require.NoError(t, err)
	assert.Equal(t, `{"type":"ok","value":true}`, out)

	out, err = run(t, ts.URL, "admin")
	require.NoError(t, err)
	assert.Equal(t, inventor1.String(), out)
}

func TestCLI_RequiresCallerForMutations(t *testing.T) {
	ts := newTestServer(t)

	_, err := run(t, ts.URL, "verify", inventor1.String())
	assert.ErrorIs(t, err, interfaces.ErrEmptyIdentity)
}

func TestCLI_RequiresIdentityArgument(t *testing.T) {
	ts := newTestServer(t)

	_, err := run(t, ts.URL, "is-inventor")
	assert.Error(t, err)
}
