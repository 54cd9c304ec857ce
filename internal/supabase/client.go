// Package supabase implements the inventory gateway over a Supabase
// project's PostgREST interface.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/opmc/inventory/internal/model"
)

// uniqueViolation is the Postgres SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

// Client talks to /rest/v1 of a Supabase project using the anon key.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New returns a client for the project at baseURL.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.http = hc
	return c
}

// APIError is a non-2xx PostgREST response.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("postgrest status %d", e.Status)
	}
	return fmt.Sprintf("postgrest status %d (%s): %s", e.Status, e.Code, e.Message)
}

type medicineRow struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Baris       *string    `json:"baris"`
	Rak         *string    `json:"rak"`
	Tingkat     *string    `json:"tingkat"`
	Petak       *string    `json:"petak"`
	LastUpdated *timestamp `json:"last_updated"`
}

func (r medicineRow) medicine() model.Medicine {
	return model.Medicine{
		ID:   r.ID,
		Name: r.Name,
		Location: model.Location{
			Baris:   deref(r.Baris),
			Rak:     deref(r.Rak),
			Tingkat: deref(r.Tingkat),
			Petak:   deref(r.Petak),
		},
		LastUpdated: r.LastUpdated.ptr(),
	}
}

type locationPatch struct {
	Baris       *string   `json:"baris"`
	Rak         *string   `json:"rak"`
	Tingkat     *string   `json:"tingkat"`
	Petak       *string   `json:"petak"`
	LastUpdated time.Time `json:"last_updated"`
}

type optionRow struct {
	ID        int64     `json:"id"`
	Category  string    `json:"category"`
	Value     string    `json:"value"`
	CreatedAt timestamp `json:"created_at"`
}

func (r optionRow) option() model.LocationOption {
	return model.LocationOption{
		ID:        r.ID,
		Category:  model.Category(r.Category),
		Value:     r.Value,
		CreatedAt: time.Time(r.CreatedAt),
	}
}

// timestamp decodes both timestamptz and timestamp columns. Values without
// an offset are read as UTC.
type timestamp time.Time

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

func (t *timestamp) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("decoding timestamp: %w", err)
	}
	for _, layout := range timestampLayouts {
		if v, err := time.Parse(layout, s); err == nil {
			*t = timestamp(v)
			return nil
		}
	}
	return fmt.Errorf("decoding timestamp %q: unknown layout", s)
}

func (t *timestamp) ptr() *time.Time {
	if t == nil {
		return nil
	}
	v := time.Time(*t)
	return &v
}

// ListMedicines returns every medicine ordered by name.
func (c *Client) ListMedicines(ctx context.Context) ([]model.Medicine, error) {
	q := url.Values{"select": {"*"}, "order": {"name.asc"}}

	var rows []medicineRow
	if err := c.do(ctx, http.MethodGet, "medicines", q, nil, &rows); err != nil {
		return nil, fmt.Errorf("listing medicines: %w", err)
	}

	meds := make([]model.Medicine, 0, len(rows))
	for _, r := range rows {
		meds = append(meds, r.medicine())
	}
	return meds, nil
}

// UpdateMedicineLocation overwrites all four location fields. Unset fields are
// sent as JSON null.
func (c *Client) UpdateMedicineLocation(ctx context.Context, id int64, loc model.Location, at time.Time) error {
	q := url.Values{"id": {"eq." + strconv.FormatInt(id, 10)}}
	body := locationPatch{
		Baris:       nullable(loc.Baris),
		Rak:         nullable(loc.Rak),
		Tingkat:     nullable(loc.Tingkat),
		Petak:       nullable(loc.Petak),
		LastUpdated: at.UTC(),
	}

	var rows []medicineRow
	if err := c.do(ctx, http.MethodPatch, "medicines", q, body, &rows); err != nil {
		return fmt.Errorf("updating medicine location: %w", err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("updating medicine location: medicine %d not found", id)
	}
	return nil
}

// ListLocationOptions returns every option ordered by value.
func (c *Client) ListLocationOptions(ctx context.Context) ([]model.LocationOption, error) {
	q := url.Values{"select": {"*"}, "order": {"value.asc"}}

	var rows []optionRow
	if err := c.do(ctx, http.MethodGet, "location_options", q, nil, &rows); err != nil {
		return nil, fmt.Errorf("listing location options: %w", err)
	}

	opts := make([]model.LocationOption, 0, len(rows))
	for _, r := range rows {
		opts = append(opts, r.option())
	}
	return opts, nil
}

// CreateLocationOption inserts an option. A unique violation wraps
// model.ErrDuplicateOption.
func (c *Client) CreateLocationOption(ctx context.Context, category model.Category, value string) (*model.LocationOption, error) {
	body := []map[string]string{{"category": string(category), "value": value}}

	var rows []optionRow
	err := c.do(ctx, http.MethodPost, "location_options", nil, body, &rows)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Code == uniqueViolation {
		return nil, fmt.Errorf("creating location option: %w: %w", model.ErrDuplicateOption, err)
	}
	if err != nil {
		return nil, fmt.Errorf("creating location option: %w", err)
	}
	if len(rows) == 0 {
		return nil, errors.New("creating location option: empty response")
	}

	opt := rows[0].option()
	return &opt, nil
}

// DeleteLocationOption removes an option by id.
func (c *Client) DeleteLocationOption(ctx context.Context, id int64) error {
	q := url.Values{"id": {"eq." + strconv.FormatInt(id, 10)}}
	if err := c.do(ctx, http.MethodDelete, "location_options", q, nil, nil); err != nil {
		return fmt.Errorf("deleting location option: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, table string, q url.Values, in, out any) error {
	u := c.baseURL + "/rest/v1/" + table
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method == http.MethodPost || method == http.MethodPatch {
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if json.Unmarshal(msg, apiErr) != nil {
			apiErr.Message = strings.TrimSpace(string(msg))
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
