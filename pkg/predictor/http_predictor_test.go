package predictor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPPredictorSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/predict" {
			t.Errorf("path = %s, want /predict", r.URL.Path)
		}
		var req struct {
			Concepts []string `json:"concepts"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Concepts) != 2 {
			t.Errorf("concepts = %v", req.Concepts)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"code": "6142004", "name": "Influenza", "confidence": 0.92,
		})
	}))
	defer srv.Close()

	p := NewHTTPPredictor(srv.URL, time.Second)
	got, err := p.Predict(context.Background(), []string{"386661006", "49727002"})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if got.Code != "6142004" || got.Name != "Influenza" {
		t.Errorf("Predict = {%s %s}", got.Code, got.Name)
	}
	if got.Confidence == nil || *got.Confidence != 0.92 {
		t.Errorf("Confidence = %v", got.Confidence)
	}
}

func TestHTTPPredictorDegradesToNoMatch(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"malformed body", func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte("not json"))
		}},
		{"empty code", func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"code":"","name":""}`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			p := NewHTTPPredictor(srv.URL, time.Second)
			_, err := p.Predict(context.Background(), []string{"386661006"})
			if !errors.Is(err, ErrNoMatch) {
				t.Errorf("err = %v, want ErrNoMatch", err)
			}
		})
	}
}

func TestHTTPPredictorUnreachableDegradesToNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	p := NewHTTPPredictor(srv.URL, time.Second)
	_, err := p.Predict(context.Background(), []string{"386661006"})
	if !errors.Is(err, ErrNoMatch) {
		t.Errorf("err = %v, want ErrNoMatch", err)
	}
}
