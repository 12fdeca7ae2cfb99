package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPPredictor delegates prediction to an external model service.
// Any transport or decoding problem degrades to ErrNoMatch: the
// pipeline must keep producing a terminal result even when the
// model service is down.
type HTTPPredictor struct {
	BaseURL string
	Client  *http.Client
}

var _ Predictor = &HTTPPredictor{}

func NewHTTPPredictor(baseURL string, timeout time.Duration) *HTTPPredictor {
	return &HTTPPredictor{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

type predictRequest struct {
	Concepts []string `json:"concepts"`
}

type predictResponse struct {
	Code       string   `json:"code"`
	Name       string   `json:"name"`
	Confidence *float64 `json:"confidence,omitempty"`
}

func (p *HTTPPredictor) Predict(ctx context.Context, concepts []string) (Diagnosis, error) {
	payloadBytes, err := json.Marshal(predictRequest{Concepts: concepts})
	if err != nil {
		return Diagnosis{}, fmt.Errorf("marshal request: %w", ErrNoMatch)
	}

	url := p.BaseURL + "/predict"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return Diagnosis{}, ErrNoMatch
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return Diagnosis{}, ErrNoMatch
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return Diagnosis{}, ErrNoMatch
	}

	if resp.StatusCode != http.StatusOK {
		return Diagnosis{}, ErrNoMatch
	}

	var predicted predictResponse
	if err := json.Unmarshal(bodyBytes, &predicted); err != nil {
		return Diagnosis{}, ErrNoMatch
	}
	if predicted.Code == "" {
		return Diagnosis{}, ErrNoMatch
	}

	return Diagnosis{
		Code:       predicted.Code,
		Name:       predicted.Name,
		Confidence: predicted.Confidence,
	}, nil
}
