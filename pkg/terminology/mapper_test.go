package terminology

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

func TestStaticMapper(t *testing.T) {
	m := NewStaticMapper()

	tests := []struct {
		name     string
		symptoms []string
		want     []string
	}{
		{"known symptoms", []string{"fever", "cough"}, []string{"386661006", "49727002"}},
		{"case and whitespace", []string{" FeVer ", "Cough"}, []string{"386661006", "49727002"}},
		{"duplicates collapse", []string{"fever", "fever"}, []string{"386661006"}},
		{"unknown skipped", []string{"fever", "glowing toes"}, []string{"386661006"}},
		{"all unknown", []string{"glowing toes"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.Map(context.Background(), tt.symptoms)
			if err != nil {
				t.Fatalf("Map: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Map = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHTTPMapperSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/map" {
			t.Errorf("path = %s, want /map", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %s", ct)
		}
		var req struct {
			Symptoms []string `json:"symptoms"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string][]string{"concepts": {"386661006", "49727002"}})
	}))
	defer srv.Close()

	m := NewHTTPMapper(srv.URL, time.Second)
	got, err := m.Map(context.Background(), []string{"fever", "cough"})
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"386661006", "49727002"}) {
		t.Errorf("Map = %v", got)
	}
}

func TestHTTPMapperFailureKinds(t *testing.T) {
	t.Run("non-200 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		_, err := NewHTTPMapper(srv.URL, time.Second).Map(context.Background(), []string{"fever"})
		assertFailureKind(t, err, adapter.KindInvalidResponse)
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte("{broken"))
		}))
		defer srv.Close()

		_, err := NewHTTPMapper(srv.URL, time.Second).Map(context.Background(), []string{"fever"})
		assertFailureKind(t, err, adapter.KindInvalidResponse)
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-time.After(2 * time.Second):
			case <-r.Context().Done():
			}
		}))
		defer srv.Close()

		_, err := NewHTTPMapper(srv.URL, 50*time.Millisecond).Map(context.Background(), []string{"fever"})
		assertFailureKind(t, err, adapter.KindTimeout)
	})

	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		srv.Close()

		_, err := NewHTTPMapper(srv.URL, time.Second).Map(context.Background(), []string{"fever"})
		assertFailureKind(t, err, adapter.KindUnreachable)
	})
}

func assertFailureKind(t *testing.T, err error, want adapter.Kind) {
	t.Helper()
	f, ok := adapter.AsFailure(err)
	if !ok {
		t.Fatalf("err = %v, want *adapter.Failure", err)
	}
	if f.Kind != want {
		t.Errorf("Kind = %s, want %s", f.Kind, want)
	}
}
