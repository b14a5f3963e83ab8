package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/crewflow/console/pkg/api"
	"github.com/crewflow/console/pkg/log"
)

type (
	// Provider supplies the crews and tasks the console composes into
	// flows. The console only consumes this as a read-only lookup
	Provider interface {
		ListCrews(context.Context) ([]*api.CrewRef, error)
		ListTasksForCrew(context.Context, api.CrewID) ([]*api.TaskRef, error)
	}

	// HTTPProvider talks to a remote crew/task catalog over HTTP
	HTTPProvider struct {
		httpClient *http.Client
		baseURL    string
	}
)

var (
	ErrCatalogHTTP  = errors.New("catalog returned HTTP error")
	ErrListCrews    = errors.New("failed to list crews")
	ErrListTasks    = errors.New("failed to list crew tasks")
	ErrEmptyBaseURL = errors.New("catalog base URL empty")
)

var _ Provider = (*HTTPProvider)(nil)

// NewHTTPProvider creates a catalog provider for the given base URL
func NewHTTPProvider(baseURL string, timeout time.Duration) (*HTTPProvider, error) {
	if baseURL == "" {
		return nil, ErrEmptyBaseURL
	}
	return &HTTPProvider{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
	}, nil
}

// ListCrews fetches all crews known to the catalog
func (p *HTTPProvider) ListCrews(ctx context.Context) ([]*api.CrewRef, error) {
	var crews []*api.CrewRef
	url := p.baseURL + "/crews"
	if err := p.getJSON(ctx, url, &crews); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrListCrews, err)
	}
	return crews, nil
}

// ListTasksForCrew fetches the task list of a single crew
func (p *HTTPProvider) ListTasksForCrew(
	ctx context.Context, crewID api.CrewID,
) ([]*api.TaskRef, error) {
	var tasks []*api.TaskRef
	url := fmt.Sprintf("%s/crews/%s/tasks", p.baseURL, crewID)
	if err := p.getJSON(ctx, url, &tasks); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrListTasks, err)
	}
	return tasks, nil
}

func (p *HTTPProvider) getJSON(
	ctx context.Context, url string, into any,
) error {
	httpReq, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return err
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		slog.Error("Catalog request failed",
			slog.String("url", url),
			log.Error(err))
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		slog.Error("Catalog HTTP error",
			slog.String("url", url),
			slog.Int("status_code", resp.StatusCode),
			slog.String("response_body", string(body)))
		return fmt.Errorf("%w: HTTP %d", ErrCatalogHTTP, resp.StatusCode)
	}

	return json.Unmarshal(body, into)
}
