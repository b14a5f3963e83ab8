package store

import (
	"bytes"
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

// HTTPStore talks to the remote flow store over its CRUD contract.
// Errors are surfaced verbatim; a failed call never mutates anything
// the caller holds
type HTTPStore struct {
	httpClient *http.Client
	baseURL    string
}

var (
	ErrStoreHTTP        = errors.New("flow store returned HTTP error")
	ErrStoreEmptyURL    = errors.New("flow store base URL empty")
	ErrUnexpectedStatus = errors.New("flow store returned unexpected status")
)

var _ Store = (*HTTPStore)(nil)

// NewHTTPStore creates a client for the remote flow store
func NewHTTPStore(baseURL string, timeout time.Duration) (*HTTPStore, error) {
	if baseURL == "" {
		return nil, ErrStoreEmptyURL
	}
	return &HTTPStore{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
	}, nil
}

func (s *HTTPStore) Create(
	ctx context.Context, doc *api.FlowConfiguration,
) (*api.FlowConfiguration, error) {
	var res api.FlowConfiguration
	err := s.do(ctx, "POST", s.baseURL+"/flows", doc, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *HTTPStore) Get(
	ctx context.Context, id api.FlowID,
) (*api.FlowConfiguration, error) {
	var res api.FlowConfiguration
	err := s.do(ctx, "GET", s.flowURL(id), nil, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *HTTPStore) Update(
	ctx context.Context, id api.FlowID, doc *api.FlowConfiguration,
) (*api.FlowConfiguration, error) {
	var res api.FlowConfiguration
	err := s.do(ctx, "PUT", s.flowURL(id), doc, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *HTTPStore) Delete(ctx context.Context, id api.FlowID) error {
	return s.do(ctx, "DELETE", s.flowURL(id), nil, nil)
}

func (s *HTTPStore) List(ctx context.Context) ([]*api.FlowSummary, error) {
	var res []*api.FlowSummary
	err := s.do(ctx, "GET", s.baseURL+"/flows", nil, &res)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *HTTPStore) Close() error {
	s.httpClient.CloseIdleConnections()
	return nil
}

func (s *HTTPStore) flowURL(id api.FlowID) string {
	return fmt.Sprintf("%s/flows/%s", s.baseURL, id)
}

func (s *HTTPStore) do(
	ctx context.Context, method, url string, payload, into any,
) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewBuffer(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		slog.Error("Flow store request failed",
			slog.String("method", method),
			slog.String("url", url),
			log.Error(err))
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrFlowNotFound, url)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrFlowExists, url)
	default:
		slog.Error("Flow store HTTP error",
			slog.String("method", method),
			slog.String("url", url),
			slog.Int("status_code", resp.StatusCode),
			slog.String("response_body", string(respBody)))
		return fmt.Errorf("%w: HTTP %d", ErrStoreHTTP, resp.StatusCode)
	}

	if into == nil || len(respBody) == 0 {
		return nil
	}
	return json.Unmarshal(respBody, into)
}
