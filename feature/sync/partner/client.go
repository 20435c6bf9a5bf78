package partner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"delivery-sync/feature/sync/tabular"

	"go.uber.org/zap"
)

// maxResponseSize is the maximum allowed response size from the partner API (10MB).
const maxResponseSize = 10 * 1024 * 1024

// ErrFetchFailed covers every fatal fetch outcome: network or timeout
// failures, non-2xx statuses, and an undecodable top-level envelope. Per-
// dataset decode failures are NOT fatal; those datasets are skipped instead.
var ErrFetchFailed = errors.New("partner: fetch failed")

// Client fetches named snapshot datasets from the partner API.
type Client interface {
	// FetchDatasets requests the named datasets and returns the ones that
	// decoded successfully. An empty map is a valid result.
	FetchDatasets(ctx context.Context, names []string) (map[string]*tabular.Dataset, error)
}

// HTTPClient is the production Client talking to the partner endpoint.
type HTTPClient struct {
	cfg        Config
	httpClient *http.Client
	logger     *zap.Logger
}

// NewHTTPClient creates a fetch client with a bounded request timeout.
func NewHTTPClient(cfg Config, logger *zap.Logger) (*HTTPClient, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}

	return &HTTPClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
		logger: logger,
	}, nil
}

// fetchRequest is the outbound request payload.
type fetchRequest struct {
	ClientID    string   `json:"client_id"`
	Datasets    []string `json:"datasets"`
	RequestedAt string   `json:"requested_at"`
}

// fetchEnvelope is the partner's multi-dataset response wrapper. Each table's
// DataSet field is itself JSON-encoded text.
type fetchEnvelope struct {
	Tables []fetchTable `json:"Tables"`
}

type fetchTable struct {
	Name    string `json:"Name"`
	DataSet string `json:"DataSet"`
}

type datasetPayload struct {
	Columns []string `json:"columns"`
	Data    [][]any  `json:"data"`
}

// FetchDatasets issues one authenticated POST and unwraps the nested envelope.
// Datasets whose payload fails to decode are skipped and logged; the rest are
// returned. Transport, status and top-level decode failures all surface as
// ErrFetchFailed with no partial mapping.
func (c *HTTPClient) FetchDatasets(ctx context.Context, names []string) (map[string]*tabular.Dataset, error) {
	payload := fetchRequest{
		ClientID:    c.cfg.ClientID,
		Datasets:    names,
		RequestedAt: time.Now().In(c.cfg.Location()).Format("2006-01-02 15:04:05"),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding request: %v", ErrFetchFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", ErrFetchFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}
	if c.cfg.Cookie != "" {
		req.Header.Set("Cookie", c.cfg.Cookie)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrFetchFailed, resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrFetchFailed, err)
	}

	var envelope fetchEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("%w: decoding envelope: %v", ErrFetchFailed, err)
	}

	datasets := make(map[string]*tabular.Dataset, len(envelope.Tables))
	for _, table := range envelope.Tables {
		var payload datasetPayload
		if err := json.Unmarshal([]byte(table.DataSet), &payload); err != nil {
			// One bad dataset never spoils the others.
			c.logger.Warn("Skipping undecodable dataset",
				zap.String("dataset", table.Name),
				zap.Error(err),
			)
			continue
		}
		datasets[table.Name] = tabular.New(table.Name, payload.Columns, payload.Data)
	}

	return datasets, nil
}
