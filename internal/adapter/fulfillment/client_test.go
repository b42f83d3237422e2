package fulfillment

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	domainErrors "github.com/verdora/ecotrade/internal/domain/errors"
	"github.com/verdora/ecotrade/internal/domain/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewHTTPClientValidatesURL(t *testing.T) {
	if _, err := NewHTTPClient("://bad-url", testLogger()); err == nil {
		t.Fatal("expected error for invalid url")
	}
	if _, err := NewHTTPClient("/relative", testLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
}

func TestSubmitReturnsReference(t *testing.T) {
	var received submitRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/orders" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
		_ = json.NewEncoder(w).Encode(submitResponse{Ref: "ext-42"})
	}))
	defer srv.Close()

	client, err := NewHTTPClient(srv.URL, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	order := &model.Order{
		Total: 120,
		Lines: []model.OrderLine{{ProductID: 7, Quantity: 2}},
	}
	ref, err := client.Submit(context.Background(), order)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref != "ext-42" {
		t.Errorf("expected ref ext-42, got %q", ref)
	}
	if received.Total != 120 || len(received.Lines) != 1 || received.Lines[0].ProductID != 7 {
		t.Errorf("payload mismatch: %+v", received)
	}
}

func TestSubmitReportsServiceErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client, _ := NewHTTPClient(srv.URL, testLogger())
	if _, err := client.Submit(context.Background(), &model.Order{}); err == nil {
		t.Fatal("expected error on 500")
	}
}

func TestSubmitMissingReference(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(submitResponse{})
	}))
	defer srv.Close()

	client, _ := NewHTTPClient(srv.URL, testLogger())
	if _, err := client.Submit(context.Background(), &model.Order{}); err == nil {
		t.Fatal("expected error when reference is missing")
	}
}

func TestFetchReturnsStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/orders/ext-42" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(statusResponse{Ref: "ext-42", Status: "FULFILLED"})
	}))
	defer srv.Close()

	client, _ := NewHTTPClient(srv.URL, testLogger())
	result, err := client.Fetch(context.Background(), "ext-42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != model.FulfillmentFulfilled {
		t.Errorf("expected FULFILLED, got %s", result.Status)
	}
}

func TestFetchHandlesSpecialStatuses(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		header     http.Header
		wantErr    error
	}{
		{name: "not registered", statusCode: http.StatusNoContent, wantErr: ErrOrderNotRegistered},
		{name: "too many requests", statusCode: http.StatusTooManyRequests, header: http.Header{"Retry-After": []string{"5"}}, wantErr: TooManyRequestsError{RetryAfter: 5 * time.Second}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				for key, values := range tt.header {
					for _, v := range values {
						w.Header().Add(key, v)
					}
				}
				w.WriteHeader(tt.statusCode)
			}))
			defer srv.Close()

			client, _ := NewHTTPClient(srv.URL, testLogger())
			_, err := client.Fetch(context.Background(), "ext-1")
			var tooMany TooManyRequestsError
			switch {
			case errors.Is(tt.wantErr, ErrOrderNotRegistered):
				if !errors.Is(err, ErrOrderNotRegistered) {
					t.Errorf("expected ErrOrderNotRegistered, got %v", err)
				}
			case errors.As(err, &tooMany):
				if tooMany.RetryAfter != 5*time.Second {
					t.Errorf("expected retry after 5s, got %s", tooMany.RetryAfter)
				}
			default:
				t.Errorf("unexpected error %v", err)
			}
		})
	}
}

func TestProductFetchesCatalogEntry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/products/7" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(productResponse{
			ID: 7, Name: "Monstera", Price: 25, EarnPerUnit: 3, RedeemCost: 250, IsPlant: true,
		})
	}))
	defer srv.Close()

	client, _ := NewHTTPClient(srv.URL, testLogger())
	product, err := client.Product(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product.Name != "Monstera" || product.RedeemCost != 250 || !product.IsPlant {
		t.Errorf("product mismatch: %+v", product)
	}
}

func TestProductNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client, _ := NewHTTPClient(srv.URL, testLogger())
	if _, err := client.Product(context.Background(), 404); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestParseRetryAfter(t *testing.T) {
	if got := parseRetryAfter(""); got != 5*time.Second {
		t.Errorf("expected default 5s, got %s", got)
	}
	if got := parseRetryAfter("12"); got != 12*time.Second {
		t.Errorf("expected 12s, got %s", got)
	}
	if got := parseRetryAfter("garbage"); got != 5*time.Second {
		t.Errorf("expected fallback 5s, got %s", got)
	}
}
