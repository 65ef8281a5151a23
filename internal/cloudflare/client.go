package cloudflare

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/edvin/ddns/internal/model"
)

// DefaultBaseURL is the public v4 API endpoint.
const DefaultBaseURL = "https://api.cloudflare.com/client/v4"

const (
	zonesPerPage   = 50
	recordsPerPage = 100
	// ttlAuto is the API's "automatic" TTL value.
	ttlAuto = 1
)

// Client talks to the Cloudflare v4 API on behalf of a single caller. It
// carries that caller's credentials and is built fresh for every request.
type Client struct {
	baseURL    string
	email      string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL string, creds model.Credentials, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		email:   creds.Email,
		token:   creds.Secret,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// VerifyToken returns the status of the caller's API token ("active",
// "disabled" or "expired").
func (c *Client) VerifyToken(ctx context.Context) (string, error) {
	env, err := do[tokenStatus](ctx, c, http.MethodGet, "/user/tokens/verify", nil, nil)
	if err != nil {
		return "", err
	}
	return env.Result.Status, nil
}

// ListZones returns every zone the token can see, following pagination.
func (c *Client) ListZones(ctx context.Context) ([]model.Zone, error) {
	var zones []model.Zone
	for page := 1; ; page++ {
		q := url.Values{}
		q.Set("page", strconv.Itoa(page))
		q.Set("per_page", strconv.Itoa(zonesPerPage))

		env, err := do[[]zone](ctx, c, http.MethodGet, "/zones", q, nil)
		if err != nil {
			return nil, fmt.Errorf("list zones page %d: %w", page, err)
		}
		for _, z := range env.Result {
			zones = append(zones, model.Zone{ID: z.ID, Name: z.Name})
		}
		if lastPage(env.ResultInfo, page) {
			return zones, nil
		}
	}
}

// ListRecords returns the records in a zone whose name and type match
// exactly.
func (c *Client) ListRecords(ctx context.Context, zoneID, name, recordType string) ([]model.ZoneRecord, error) {
	path := fmt.Sprintf("/zones/%s/dns_records", url.PathEscape(zoneID))

	var records []model.ZoneRecord
	for page := 1; ; page++ {
		q := url.Values{}
		q.Set("name.exact", name)
		q.Set("type", recordType)
		q.Set("page", strconv.Itoa(page))
		q.Set("per_page", strconv.Itoa(recordsPerPage))

		env, err := do[[]dnsRecord](ctx, c, http.MethodGet, path, q, nil)
		if err != nil {
			return nil, fmt.Errorf("list dns records %s %s: %w", name, recordType, err)
		}
		for _, r := range env.Result {
			records = append(records, toZoneRecord(r, zoneID))
		}
		if lastPage(env.ResultInfo, page) {
			return records, nil
		}
	}
}

// UpdateRecord overwrites a record with the given fields.
func (c *Client) UpdateRecord(ctx context.Context, update model.ZoneRecordUpdate) (*model.ZoneRecord, error) {
	ttl := update.TTL
	if ttl <= 0 {
		ttl = ttlAuto
	}
	body := updateDNSRecord{
		Type:    update.Type,
		Name:    update.Name,
		Content: update.Content,
		TTL:     ttl,
		Proxied: update.Proxied,
		Comment: update.Comment,
	}

	path := fmt.Sprintf("/zones/%s/dns_records/%s", url.PathEscape(update.ZoneID), url.PathEscape(update.RecordID))
	env, err := do[dnsRecord](ctx, c, http.MethodPut, path, nil, body)
	if err != nil {
		return nil, fmt.Errorf("update dns record %s: %w", update.RecordID, err)
	}
	rec := toZoneRecord(env.Result, update.ZoneID)
	return &rec, nil
}

func do[T any](ctx context.Context, c *Client, method, path string, query url.Values, body any) (*envelope[T], error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if c.email != "" {
		req.Header.Set("X-Auth-Email", c.email)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cloudflare API request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var env envelope[T]
	if err := json.Unmarshal(respBody, &env); err != nil {
		if resp.StatusCode >= 400 {
			return nil, &APIError{StatusCode: resp.StatusCode}
		}
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode >= 400 || !env.Success {
		return nil, &APIError{StatusCode: resp.StatusCode, Errors: env.Errors}
	}
	return &env, nil
}

func lastPage(info *resultInfo, page int) bool {
	return info == nil || info.TotalPages <= page
}

func toZoneRecord(r dnsRecord, zoneID string) model.ZoneRecord {
	if r.ZoneID != "" {
		zoneID = r.ZoneID
	}
	return model.ZoneRecord{
		ID:      r.ID,
		ZoneID:  zoneID,
		Name:    r.Name,
		Type:    r.Type,
		Content: r.Content,
		TTL:     r.TTL,
		Proxied: r.Proxied,
		Comment: r.Comment,
	}
}
