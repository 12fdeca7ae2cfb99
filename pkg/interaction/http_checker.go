package interaction

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

const opCheck = "interaction.check"

type HTTPChecker struct {
	BaseURL string
	Client  *http.Client
}

var _ Checker = &HTTPChecker{}

func NewHTTPChecker(baseURL string, timeout time.Duration) *HTTPChecker {
	return &HTTPChecker{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

type checkRequest struct {
	DrugIDs []string `json:"drug_ids"`
}

type checkResponse struct {
	Interactions []Interaction `json:"interactions"`
}

func (c *HTTPChecker) Check(ctx context.Context, drugIDs []string) ([]Interaction, error) {
	payloadBytes, err := json.Marshal(checkRequest{DrugIDs: drugIDs})
	if err != nil {
		return nil, adapter.InvalidResponse(opCheck, fmt.Errorf("marshal request: %w", err))
	}

	url := c.BaseURL + "/interactions"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, adapter.Classify(opCheck, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, adapter.Classify(opCheck, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, adapter.Classify(opCheck, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, adapter.InvalidResponse(opCheck, fmt.Errorf("status %d, body: %s", resp.StatusCode, string(bodyBytes)))
	}

	var checked checkResponse
	if err := json.Unmarshal(bodyBytes, &checked); err != nil {
		return nil, adapter.InvalidResponse(opCheck, fmt.Errorf("unmarshal response: %w", err))
	}

	if checked.Interactions == nil {
		checked.Interactions = []Interaction{}
	}
	return checked.Interactions, nil
}
