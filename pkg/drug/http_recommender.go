package drug

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

const opRecommend = "drug.recommend"

type HTTPRecommender struct {
	BaseURL string
	Client  *http.Client
}

var _ Recommender = &HTTPRecommender{}

func NewHTTPRecommender(baseURL string, timeout time.Duration) *HTTPRecommender {
	return &HTTPRecommender{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

type recommendRequest struct {
	DiagnosisCode string `json:"diagnosis_code"`
}

type recommendResponse struct {
	Drugs []Recommendation `json:"drugs"`
}

func (r *HTTPRecommender) Recommend(ctx context.Context, diagnosisCode string) ([]Recommendation, error) {
	payloadBytes, err := json.Marshal(recommendRequest{DiagnosisCode: diagnosisCode})
	if err != nil {
		return nil, adapter.InvalidResponse(opRecommend, fmt.Errorf("marshal request: %w", err))
	}

	url := r.BaseURL + "/recommendations"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, adapter.Classify(opRecommend, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.Client.Do(req)
	if err != nil {
		return nil, adapter.Classify(opRecommend, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, adapter.Classify(opRecommend, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, adapter.InvalidResponse(opRecommend, fmt.Errorf("status %d, body: %s", resp.StatusCode, string(bodyBytes)))
	}

	var recommended recommendResponse
	if err := json.Unmarshal(bodyBytes, &recommended); err != nil {
		return nil, adapter.InvalidResponse(opRecommend, fmt.Errorf("unmarshal response: %w", err))
	}

	return recommended.Drugs, nil
}
