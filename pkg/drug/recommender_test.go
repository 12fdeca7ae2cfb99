package drug

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"ai-triage-be/pkg/adapter"
)

func TestStaticRecommender(t *testing.T) {
	r := NewStaticRecommender()

	t.Run("known diagnosis", func(t *testing.T) {
		got, err := r.Recommend(context.Background(), "6142004")
		if err != nil {
			t.Fatalf("Recommend: %v", err)
		}
		want := []Recommendation{{ID: "283742", Name: "Oseltamivir", Dosage: "75mg"}}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Recommend = %v, want %v", got, want)
		}
	})

	t.Run("unknown diagnosis is empty, not an error", func(t *testing.T) {
		got, err := r.Recommend(context.Background(), "999999")
		if err != nil {
			t.Fatalf("Recommend: %v", err)
		}
		if len(got) != 0 || got == nil {
			t.Errorf("Recommend = %v, want []", got)
		}
	})

	t.Run("callers cannot mutate the formulary", func(t *testing.T) {
		got, _ := r.Recommend(context.Background(), "6142004")
		got[0].Name = "mutated"
		again, _ := r.Recommend(context.Background(), "6142004")
		if again[0].Name != "Oseltamivir" {
			t.Error("formulary was mutated through a returned slice")
		}
	})
}

func TestHTTPRecommenderSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/recommendations" {
			t.Errorf("path = %s, want /recommendations", r.URL.Path)
		}
		var req struct {
			DiagnosisCode string `json:"diagnosis_code"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.DiagnosisCode != "6142004" {
			t.Errorf("diagnosis_code = %s", req.DiagnosisCode)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"drugs": []Recommendation{{ID: "283742", Name: "Oseltamivir", Dosage: "75mg"}},
		})
	}))
	defer srv.Close()

	got, err := NewHTTPRecommender(srv.URL, time.Second).Recommend(context.Background(), "6142004")
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(got) != 1 || got[0].ID != "283742" {
		t.Errorf("Recommend = %v", got)
	}
}

func TestHTTPRecommenderFailures(t *testing.T) {
	t.Run("non-200 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		_, err := NewHTTPRecommender(srv.URL, time.Second).Recommend(context.Background(), "6142004")
		f, ok := adapter.AsFailure(err)
		if !ok || f.Kind != adapter.KindInvalidResponse {
			t.Errorf("err = %v, want invalid_response failure", err)
		}
	})

	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		srv.Close()

		_, err := NewHTTPRecommender(srv.URL, time.Second).Recommend(context.Background(), "6142004")
		f, ok := adapter.AsFailure(err)
		if !ok || f.Kind != adapter.KindUnreachable {
			t.Errorf("err = %v, want unreachable failure", err)
		}
	})
}
