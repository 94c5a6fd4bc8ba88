package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	shell "github.com/ipfs/go-ipfs-api"
)

// IPFSBackend implements a snapshot backend on the mutable file system (MFS) of an
// IPFS node. Keys are files under a base directory, so a snapshot can be replaced
// in place while its previous versions stay addressable by CID.
type IPFSBackend struct {
	shell       *shell.Shell
	host        string
	port        string
	baseDir     string
	log         *slog.Logger
	locationURI string
}

// NewIPFSBackend creates a new IPFS backend connected to the node API at host:port.
func NewIPFSBackend(host, port, baseDir string, timeout time.Duration, log *slog.Logger) (*IPFSBackend, error) {
	apiURL := fmt.Sprintf("%s:%s", host, port)

	baseDir = "/" + strings.Trim(baseDir, "/")

	sh := shell.NewShell(apiURL)
	sh.SetTimeout(timeout)

	return &IPFSBackend{
		shell:       sh,
		host:        host,
		port:        port,
		baseDir:     baseDir,
		log:         log,
		locationURI: fmt.Sprintf("ipfs://%s%s", apiURL, baseDir),
	}, nil
}

// Get reads the MFS file stored under key.
// Returns ErrContentNotFound if the file doesn't exist.
func (b *IPFSBackend) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	start := time.Now()
	filePath := path.Join(b.baseDir, key)

	reader, err := b.shell.FilesRead(ctx, filePath)
	if err != nil {
		if strings.Contains(err.Error(), "does not exist") {
			b.log.Debug("Content not found in IPFS",
				slog.String("path", filePath),
				slog.Duration("duration", time.Since(start)))
			return nil, ErrContentNotFound
		}

		b.log.Error("Failed to read from IPFS",
			slog.String("path", filePath),
			"err", err,
			slog.Duration("duration", time.Since(start)))
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read data from IPFS: %w", err)
	}

	b.log.Debug("Fetched content from IPFS",
		slog.String("path", filePath),
		slog.Int("size", len(data)),
		slog.Duration("duration", time.Since(start)))

	return data, nil
}

// Put writes data to the MFS file for key, creating parent directories and
// truncating any previous content.
func (b *IPFSBackend) Put(ctx context.Context, key string, data []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}

	filePath := path.Join(b.baseDir, key)
	err := b.shell.FilesWrite(ctx, filePath, bytes.NewReader(data),
		shell.FilesWrite.Create(true),
		shell.FilesWrite.Parents(true),
		shell.FilesWrite.Truncate(true),
	)
	if err != nil {
		return fmt.Errorf("failed to write data to IPFS: %w", err)
	}

	b.log.Debug("Stored content in IPFS",
		slog.String("path", filePath),
		slog.Int("size", len(data)))

	return nil
}

// Available checks if the IPFS node is accessible.
func (b *IPFSBackend) Available(ctx context.Context) bool {
	return b.shell.IsUp()
}

// Name returns a unique identifier for this storage backend.
func (b *IPFSBackend) Name() string {
	return fmt.Sprintf("ipfs-%s-%s", b.host, b.port)
}

// LocationURI returns the URI that identifies this storage backend.
func (b *IPFSBackend) LocationURI() string {
	return b.locationURI
}
