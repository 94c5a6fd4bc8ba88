package storage

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/ruteri/inventor-registry/interfaces"
)

// Factory creates snapshot backends from URI strings.
type Factory struct {
	log *slog.Logger
}

// NewFactory creates a new factory instance.
func NewFactory(logger *slog.Logger) *Factory {
	return &Factory{log: logger}
}

// BackendFor creates a backend from a location URI.
//
// Supported schemes:
//   - file:// - Local filesystem storage
//   - s3:// - Amazon S3 or compatible object storage
//   - vault:// - HashiCorp Vault KV v2
//   - ipfs:// - IPFS mutable file system
func (f *Factory) BackendFor(locationURI interfaces.StorageBackendLocation) (interfaces.SnapshotBackend, error) {
	u, err := url.Parse(string(locationURI))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLocationURI, err)
	}

	switch strings.ToLower(u.Scheme) {
	case "file":
		return f.createFileBackend(u)
	case "s3":
		return f.createS3Backend(u)
	case "vault":
		return f.createVaultBackend(u)
	case "ipfs":
		return f.createIPFSBackend(u)
	default:
		return nil, fmt.Errorf("%w: unsupported backend scheme %q", ErrInvalidLocationURI, u.Scheme)
	}
}

// MultiBackendFor creates a MultiBackend from a list of location URIs.
// Any URI that cannot be turned into a backend fails the whole call.
func (f *Factory) MultiBackendFor(locationURIs []interfaces.StorageBackendLocation) (*MultiBackend, error) {
	if len(locationURIs) == 0 {
		return nil, fmt.Errorf("%w: no storage backends configured", ErrInvalidLocationURI)
	}

	backends := make([]interfaces.SnapshotBackend, 0, len(locationURIs))
	for _, uri := range locationURIs {
		backend, err := f.BackendFor(uri)
		if err != nil {
			return nil, fmt.Errorf("storage backend %s: %w", uri, err)
		}
		backends = append(backends, backend)
	}

	return NewMultiBackend(backends, f.log), nil
}

// createFileBackend creates a file system storage backend.
// URI format: file:///absolute/path or file://./relative/path
func (f *Factory) createFileBackend(u *url.URL) (interfaces.SnapshotBackend, error) {
	f.log.Debug("Creating file backend", slog.String("uri", u.String()))

	path := u.Path
	if u.Host != "" {
		path = u.Host + "/" + strings.TrimPrefix(path, "/")
	}

	if path == "" {
		return nil, fmt.Errorf("%w: empty path in file URI %s", ErrInvalidLocationURI, u.String())
	}

	return NewFileBackend(path, f.log)
}

// createS3Backend creates an S3 or S3-compatible storage backend.
// URI format: s3://[ACCESS_KEY:SECRET_KEY@]bucket-name/prefix?region=us-west-2&endpoint=custom.s3.com
func (f *Factory) createS3Backend(u *url.URL) (interfaces.SnapshotBackend, error) {
	f.log.Debug("Creating S3 backend", slog.String("bucket", u.Host))

	bucketName := u.Host
	if bucketName == "" {
		return nil, fmt.Errorf("%w: missing S3 bucket", ErrInvalidLocationURI)
	}

	query := u.Query()
	region := query.Get("region")
	if region == "" {
		region = "us-east-1"
	}

	var accessKey, secretKey string
	if u.User != nil {
		accessKey = u.User.Username()
		secretKey, _ = u.User.Password()
	}

	return NewS3Backend(bucketName, strings.TrimPrefix(u.Path, "/"), region, query.Get("endpoint"), accessKey, secretKey, f.log)
}

// createVaultBackend creates a Vault KV v2 storage backend.
// URI format: vault://host:port/mount/path?token=...&tls=false
// The first path segment is the mount, the rest is the data path.
func (f *Factory) createVaultBackend(u *url.URL) (interfaces.SnapshotBackend, error) {
	f.log.Debug("Creating Vault backend", slog.String("host", u.Host))

	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing Vault host", ErrInvalidLocationURI)
	}

	mountPath, dataPath, _ := strings.Cut(strings.Trim(u.Path, "/"), "/")
	if mountPath == "" {
		return nil, fmt.Errorf("%w: missing Vault mount path", ErrInvalidLocationURI)
	}

	query := u.Query()
	scheme := "https"
	if query.Get("tls") == "false" {
		scheme = "http"
	}

	return NewVaultBackend(fmt.Sprintf("%s://%s", scheme, u.Host), mountPath, dataPath, query.Get("token"), f.log)
}

// createIPFSBackend creates an IPFS storage backend.
// URI format: ipfs://host:port/base/dir?timeout=30s
func (f *Factory) createIPFSBackend(u *url.URL) (interfaces.SnapshotBackend, error) {
	f.log.Debug("Creating IPFS backend", slog.String("uri", u.String()))

	host := u.Hostname()
	if host == "" {
		return nil, fmt.Errorf("%w: missing IPFS host", ErrInvalidLocationURI)
	}

	port := u.Port()
	if port == "" {
		port = "5001"
	}

	timeout := 30 * time.Second
	if raw := u.Query().Get("timeout"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid IPFS timeout: %v", ErrInvalidLocationURI, err)
		}
		timeout = parsed
	}

	baseDir := u.Path
	if strings.Trim(baseDir, "/") == "" {
		baseDir = "/inventor-registry"
	}

	return NewIPFSBackend(host, port, baseDir, timeout, f.log)
}
