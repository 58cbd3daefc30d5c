package content

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/hmwm/akina-halo/internal/models"
	"github.com/hmwm/akina-halo/pkg/httpclient"
)

// RemoteProvider reads and writes files on the theme-hosting backend.
// Files live at {base}/themes/{theme}/files/{path}.
type RemoteProvider struct {
	baseURL *url.URL
	client  *httpclient.Client
}

// NewRemoteProvider creates a RemoteProvider for baseURL.
func NewRemoteProvider(baseURL string, client *httpclient.Client) (*RemoteProvider, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing remote base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("remote base url must be http or https: %s", baseURL)
	}
	return &RemoteProvider{baseURL: u, client: client}, nil
}

// Name implements Provider.
func (p *RemoteProvider) Name() string { return "remote" }

func (p *RemoteProvider) fileURL(theme string, file models.FileInfo) string {
	filePath := strings.TrimPrefix(file.Path, "/")
	if filePath == "" {
		filePath = file.Name
	}
	return p.baseURL.JoinPath("themes", theme, "files", filePath).String()
}

// Get implements Provider.
func (p *RemoteProvider) Get(ctx context.Context, theme string, file models.FileInfo) (string, error) {
	resp, err := p.client.Get(ctx, p.fileURL(theme, file))
	if err != nil {
		return "", fmt.Errorf("%w: %w", models.ErrProviderUnavailable, err)
	}
	data, err := p.client.ReadBody(resp)
	if err != nil {
		return "", p.mapError(file, err)
	}
	return string(data), nil
}

// Put implements Provider.
func (p *RemoteProvider) Put(ctx context.Context, theme string, file models.FileInfo, content string) error {
	resp, err := p.client.Put(ctx, p.fileURL(theme, file), "text/plain; charset=utf-8", []byte(content))
	if err != nil {
		return fmt.Errorf("%w: %w", models.ErrProviderUnavailable, err)
	}
	if _, err := p.client.ReadBody(resp); err != nil {
		return p.mapError(file, err)
	}
	return nil
}

func (p *RemoteProvider) mapError(file models.FileInfo, err error) error {
	var statusErr *httpclient.StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
		return fmt.Errorf("file %s: %w", file.Name, models.ErrNotFound)
	}
	if errors.Is(err, httpclient.ErrResponseTooLarge) {
		return fmt.Errorf("file %s: %w", file.Name, models.ErrFileTooLarge)
	}
	return fmt.Errorf("file %s: %w", file.Name, err)
}

// CircuitState reports the state of the circuit breaker guarding the remote API.
func (p *RemoteProvider) CircuitState() httpclient.CircuitState {
	return p.client.CircuitState()
}
