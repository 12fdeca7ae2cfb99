package predictor

import (
	"fmt"
	"time"
)

func NewPredictor(providerType, baseURL string, timeout time.Duration) (Predictor, error) {
	switch providerType {
	case "rules":
		return NewRulePredictor(), nil
	case "http":
		if baseURL == "" {
			return nil, fmt.Errorf("http predictor requires a base URL")
		}
		return NewHTTPPredictor(baseURL, timeout), nil
	default:
		return nil, fmt.Errorf("unsupported predictor provider: %s", providerType)
	}
}
