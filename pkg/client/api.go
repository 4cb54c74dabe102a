package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"

	"bookshelf.dev/storefront/pkg/ai"
	"bookshelf.dev/storefront/pkg/catalog"
	"bookshelf.dev/storefront/pkg/global"
	"bookshelf.dev/storefront/pkg/models"
)

// ErrNotFound is returned when the API answers 404. It never triggers the offline fallback.
var ErrNotFound = errors.New("not found")

// StatusError is a non-2xx answer from the API.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API request failed with status %d", e.StatusCode)
}

// Client talks to the BookShelf API. Transport failures and non-2xx answers other than 404
// are logged and answered from the offline Mock instead.
type Client struct {
	BaseURL *url.URL
	HTTP    *http.Client
	Mock    *Mock
}

func New(baseURL string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API base url %q: %w", baseURL, err)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: global.DefaultTimeout}
	}
	return &Client{BaseURL: u, HTTP: httpClient, Mock: NewMock(catalog.DefaultRand)}, nil
}

func (c *Client) do(ctx context.Context, method, path, rawQuery string, body io.Reader) (*global.Response, error) {
	rel := &url.URL{Path: path, RawQuery: rawQuery}
	u := c.BaseURL.ResolveReference(rel)

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &global.Response{StatusCode: resp.StatusCode, Body: data, Headers: resp.Header}, nil
}

func (c *Client) getJSON(ctx context.Context, path, rawQuery string, out any) error {
	return c.sendJSON(ctx, http.MethodGet, path, rawQuery, nil, out)
}

func (c *Client) sendJSON(ctx context.Context, method, path, rawQuery string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	resp, err := c.do(ctx, method, path, rawQuery, body)
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if !resp.OK() {
		return &StatusError{StatusCode: resp.StatusCode}
	}
	return json.Unmarshal(resp.Body, out)
}

// fallback reports whether err should be answered from offline data.
func fallback(ctx context.Context, err error) bool {
	return ctx.Err() == nil && !errors.Is(err, ErrNotFound)
}

func (c *Client) FeaturedBooks(ctx context.Context) ([]models.Book, error) {
	var books []models.Book
	err := c.getJSON(ctx, "/api/books/featured", "", &books)
	if err == nil {
		return books, nil
	}
	if !fallback(ctx, err) {
		return nil, err
	}
	log.Printf("Error fetching featured books: %v", err)
	return c.Mock.FeaturedBooks(), nil
}

func (c *Client) Books(ctx context.Context, q catalog.Query) (*models.BookPage, error) {
	var page models.BookPage
	err := c.getJSON(ctx, "/api/books", q.Values().Encode(), &page)
	if err == nil {
		return &page, nil
	}
	if !fallback(ctx, err) {
		return nil, err
	}
	log.Printf("Error fetching books: %v", err)
	mock := c.Mock.Books(q)
	return &mock, nil
}

func (c *Client) Book(ctx context.Context, id string) (*models.Book, error) {
	var book models.Book
	err := c.getJSON(ctx, "/api/books/"+url.PathEscape(id), "", &book)
	if err == nil {
		return &book, nil
	}
	if !fallback(ctx, err) {
		return nil, err
	}
	log.Printf("Error fetching book with ID %s: %v", id, err)
	mock := c.Mock.Book(id)
	return &mock, nil
}

func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := c.getJSON(ctx, "/api/categories", "", &categories)
	if err == nil {
		return categories, nil
	}
	if !fallback(ctx, err) {
		return nil, err
	}
	log.Printf("Error fetching categories: %v", err)
	return c.Mock.Categories(), nil
}

func (c *Client) SubmitOrder(ctx context.Context, order *models.Order) (*models.OrderConfirmation, error) {
	var confirmation models.OrderConfirmation
	err := c.sendJSON(ctx, http.MethodPost, "/api/orders", "", order, &confirmation)
	if err == nil {
		return &confirmation, nil
	}
	if !fallback(ctx, err) {
		return nil, err
	}
	log.Printf("Error submitting order: %v", err)
	return c.Mock.SubmitOrder(), nil
}

// BookInsights has no offline fallback; callers simply skip the notes on error.
func (c *Client) BookInsights(ctx context.Context, id string) (*ai.BookInsights, error) {
	var envelope struct {
		Data ai.BookInsights `json:"data"`
	}
	if err := c.getJSON(ctx, "/api/books/"+url.PathEscape(id)+"/insights", "", &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}
