package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ruteri/inventor-registry/api"
	"github.com/ruteri/inventor-registry/interfaces"
	"github.com/ruteri/inventor-registry/registry"
)

// ErrUnexpectedResponse is returned when the server answers with a status or body
// that does not belong to the registry API.
var ErrUnexpectedResponse = errors.New("unexpected registry response")

// RegistryClient talks to an inventor registry server.
type RegistryClient struct {
	// ServerAddr is the base URL of the registry server.
	ServerAddr string

	// Caller is sent in the caller identity header of state-mutating requests.
	Caller interfaces.Identity

	// HTTPClient is used for all requests. Defaults to a client with a 30s timeout.
	HTTPClient *http.Client
}

// NewRegistryClient creates a client acting as caller.
func NewRegistryClient(serverAddr string, caller interfaces.Identity) *RegistryClient {
	return &RegistryClient{
		ServerAddr: strings.TrimRight(serverAddr, "/"),
		Caller:     caller,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// RegisterInventor registers the client's caller identity.
func (c *RegistryClient) RegisterInventor(ctx context.Context, name, credentials string) (registry.Result, error) {
	body, err := json.Marshal(api.RegisterRequest{Name: name, Credentials: credentials})
	if err != nil {
		return registry.Result{}, err
	}
	return c.doResult(ctx, http.MethodPost, "/api/inventors", body)
}

// VerifyInventor asks the server to verify target on behalf of the caller.
func (c *RegistryClient) VerifyInventor(ctx context.Context, target interfaces.Identity) (registry.Result, error) {
	return c.doResult(ctx, http.MethodPost, inventorPath(target)+"/verify", nil)
}

// TransferAdmin hands the admin role to newAdmin on behalf of the caller.
func (c *RegistryClient) TransferAdmin(ctx context.Context, newAdmin interfaces.Identity) (registry.Result, error) {
	body, err := json.Marshal(api.TransferAdminRequest{NewAdmin: newAdmin.String()})
	if err != nil {
		return registry.Result{}, err
	}
	return c.doResult(ctx, http.MethodPost, "/api/admin/transfer", body)
}

// IsInventor reports whether identity is registered.
func (c *RegistryClient) IsInventor(ctx context.Context, identity interfaces.Identity) (bool, error) {
	var resp api.BoolResponse
	if err := c.doJSON(ctx, inventorPath(identity)+"/registered", &resp); err != nil {
		return false, err
	}
	return resp.Value, nil
}

// IsVerifiedInventor reports whether identity is registered and verified.
func (c *RegistryClient) IsVerifiedInventor(ctx context.Context, identity interfaces.Identity) (bool, error) {
	var resp api.BoolResponse
	if err := c.doJSON(ctx, inventorPath(identity)+"/verified", &resp); err != nil {
		return false, err
	}
	return resp.Value, nil
}

// Admin returns the current admin.
func (c *RegistryClient) Admin(ctx context.Context) (interfaces.Identity, error) {
	var resp api.AdminResponse
	if err := c.doJSON(ctx, "/api/admin", &resp); err != nil {
		return "", err
	}
	return resp.Admin, nil
}

// Inventor fetches the record of identity. Returns registry.ErrNotFound if there is none.
func (c *RegistryClient) Inventor(ctx context.Context, identity interfaces.Identity) (*api.InventorResponse, error) {
	var resp api.InventorResponse
	if err := c.doJSON(ctx, inventorPath(identity), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func inventorPath(identity interfaces.Identity) string {
	return "/api/inventors/" + url.PathEscape(identity.String())
}

func (c *RegistryClient) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *RegistryClient) newRequest(ctx context.Context, method, path string, body []byte) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.ServerAddr+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if !c.Caller.IsZero() {
		req.Header.Set(api.CallerIdentityHeader, c.Caller.String())
	}
	return req, nil
}

// doResult performs a state-mutating request and decodes the Result body.
// Registry rejections come back as an err Result with a nil error.
func (c *RegistryClient) doResult(ctx context.Context, method, path string, body []byte) (registry.Result, error) {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return registry.Result{}, err
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return registry.Result{}, fmt.Errorf("could not reach registry: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return registry.Result{}, fmt.Errorf("could not read registry response: %w", err)
	}

	var result registry.Result
	if err := json.Unmarshal(bodyBytes, &result); err != nil {
		return registry.Result{}, fmt.Errorf("%w: status %d: %s", ErrUnexpectedResponse, resp.StatusCode, strings.TrimSpace(string(bodyBytes)))
	}
	if api.StatusForResult(result) != resp.StatusCode {
		return registry.Result{}, fmt.Errorf("%w: status %d for %s", ErrUnexpectedResponse, resp.StatusCode, result)
	}
	return result, nil
}

// doJSON performs a GET request and decodes a 200 body into out.
// A 404 carrying a registry Result is returned as its sentinel error.
func (c *RegistryClient) doJSON(ctx context.Context, path string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("could not reach registry: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("could not read registry response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var result registry.Result
		if json.Unmarshal(bodyBytes, &result) == nil && !result.IsOk() {
			return result.Err()
		}
		return fmt.Errorf("%w: status %d: %s", ErrUnexpectedResponse, resp.StatusCode, strings.TrimSpace(string(bodyBytes)))
	}

	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("could not parse registry response: %w", err)
	}
	return nil
}
