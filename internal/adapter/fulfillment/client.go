// Package fulfillment talks to the external catalog and order fulfillment
// service over HTTP.
package fulfillment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	domainErrors "github.com/verdora/ecotrade/internal/domain/errors"
	"github.com/verdora/ecotrade/internal/domain/model"
)

// ErrOrderNotRegistered indicates the fulfillment service doesn't know the order yet.
var ErrOrderNotRegistered = errors.New("order not registered")

// TooManyRequestsError represents a rate limiting signal from the fulfillment service.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// Client exposes the operations the marketplace needs from the external service.
type Client interface {
	Submit(ctx context.Context, order *model.Order) (string, error)
	Fetch(ctx context.Context, ref string) (*model.Fulfillment, error)
	Product(ctx context.Context, productID int64) (*model.Product, error)
}

// HTTPClient implements Client via the service's HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// submitRequest mirrors the order submission payload.
type submitRequest struct {
	Lines []submitLine `json:"lines"`
	Total float64      `json:"total"`
}

type submitLine struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// submitResponse carries the reference assigned by the service.
type submitResponse struct {
	Ref string `json:"ref"`
}

// statusResponse mirrors the order status payload.
type statusResponse struct {
	Ref    string `json:"ref"`
	Status string `json:"status"`
}

// productResponse mirrors a catalog entry payload.
type productResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	EarnPerUnit int64   `json:"earn_per_unit"`
	RedeemCost  int64   `json:"redeem_cost"`
	IsPlant     bool    `json:"is_plant"`
}

// NewHTTPClient creates an HTTP fulfillment client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse fulfillment url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("fulfillment url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Submit registers the order with the fulfillment service and returns the
// external reference.
func (c *HTTPClient) Submit(ctx context.Context, order *model.Order) (string, error) {
	payload := submitRequest{Total: order.Total}
	for _, line := range order.Lines {
		payload.Lines = append(payload.Lines, submitLine{ProductID: line.ProductID, Quantity: line.Quantity})
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/orders")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted:
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", err
		}
		var data submitResponse
		if err := json.Unmarshal(raw, &data); err != nil {
			return "", err
		}
		if data.Ref == "" {
			return "", fmt.Errorf("fulfillment accepted order without reference")
		}
		return data.Ref, nil
	case http.StatusTooManyRequests:
		return "", TooManyRequestsError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	default:
		raw, _ := io.ReadAll(resp.Body)
		c.logger.Error("fulfillment submit failed", slog.Int("status", resp.StatusCode), slog.String("body", string(raw)))
		return "", fmt.Errorf("fulfillment error: %s", resp.Status)
	}
}

// Fetch queries the fulfillment service for the order status.
func (c *HTTPClient) Fetch(ctx context.Context, ref string) (*model.Fulfillment, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/orders/", ref)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		var data statusResponse
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, err
		}
		return &model.Fulfillment{Ref: data.Ref, Status: model.FulfillmentStatus(data.Status)}, nil
	case http.StatusNoContent:
		return nil, ErrOrderNotRegistered
	case http.StatusTooManyRequests:
		return nil, TooManyRequestsError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	default:
		raw, _ := io.ReadAll(resp.Body)
		c.logger.Error("fulfillment status request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(raw)))
		return nil, fmt.Errorf("fulfillment error: %s", resp.Status)
	}
}

// Product fetches a catalog entry by id.
func (c *HTTPClient) Product(ctx context.Context, productID int64) (*model.Product, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/products/", strconv.FormatInt(productID, 10))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		var data productResponse
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, err
		}
		return &model.Product{
			ID:          data.ID,
			Name:        data.Name,
			Description: data.Description,
			Price:       data.Price,
			EarnPerUnit: data.EarnPerUnit,
			RedeemCost:  data.RedeemCost,
			IsPlant:     data.IsPlant,
		}, nil
	case http.StatusNotFound:
		return nil, fmt.Errorf("product %d: %w", productID, domainErrors.ErrNotFound)
	case http.StatusTooManyRequests:
		return nil, TooManyRequestsError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	default:
		raw, _ := io.ReadAll(resp.Body)
		c.logger.Error("catalog request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(raw)))
		return nil, fmt.Errorf("fulfillment error: %s", resp.Status)
	}
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
