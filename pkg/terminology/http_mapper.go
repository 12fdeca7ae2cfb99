package terminology

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ai-triage-be/pkg/adapter"
)

const opMap = "terminology.map"

type HTTPMapper struct {
	BaseURL string
	Client  *http.Client
}

// Ensure HTTPMapper implements Mapper
var _ Mapper = &HTTPMapper{}

func NewHTTPMapper(baseURL string, timeout time.Duration) *HTTPMapper {
	return &HTTPMapper{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

// --- Request/Response structs (Internal to this package) ---

type mapRequest struct {
	Symptoms []string `json:"symptoms"`
}

type mapResponse struct {
	Concepts []string `json:"concepts"`
}

// --- Interface Implementation ---

func (m *HTTPMapper) Map(ctx context.Context, symptoms []string) ([]string, error) {
	payloadBytes, err := json.Marshal(mapRequest{Symptoms: symptoms})
	if err != nil {
		return nil, adapter.InvalidResponse(opMap, fmt.Errorf("marshal request: %w", err))
	}

	url := m.BaseURL + "/map"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, adapter.Classify(opMap, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.Client.Do(req)
	if err != nil {
		return nil, adapter.Classify(opMap, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, adapter.Classify(opMap, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, adapter.InvalidResponse(opMap, fmt.Errorf("status %d, body: %s", resp.StatusCode, string(bodyBytes)))
	}

	var mapped mapResponse
	if err := json.Unmarshal(bodyBytes, &mapped); err != nil {
		return nil, adapter.InvalidResponse(opMap, fmt.Errorf("unmarshal response: %w", err))
	}

	return mapped.Concepts, nil
}
