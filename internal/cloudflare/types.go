package cloudflare

import (
	"fmt"
	"strings"
)

// envelope is the v4 API response wrapper shared by every endpoint.
type envelope[T any] struct {
	Success    bool         `json:"success"`
	Errors     []apiMessage `json:"errors"`
	Messages   []apiMessage `json:"messages"`
	Result     T            `json:"result"`
	ResultInfo *resultInfo  `json:"result_info,omitempty"`
}

type apiMessage struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type resultInfo struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Count      int `json:"count"`
	TotalCount int `json:"total_count"`
	TotalPages int `json:"total_pages"`
}

type tokenStatus struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type zone struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

type dnsRecord struct {
	ID      string  `json:"id"`
	ZoneID  string  `json:"zone_id,omitempty"`
	Name    string  `json:"name"`
	Type    string  `json:"type"`
	Content string  `json:"content"`
	TTL     int     `json:"ttl"`
	Proxied *bool   `json:"proxied,omitempty"`
	Comment *string `json:"comment,omitempty"`
}

// updateDNSRecord is the PUT body; comment is sent even when null so an
// existing comment is never silently dropped or invented.
type updateDNSRecord struct {
	Type    string  `json:"type"`
	Name    string  `json:"name"`
	Content string  `json:"content"`
	TTL     int     `json:"ttl"`
	Proxied bool    `json:"proxied"`
	Comment *string `json:"comment"`
}

// APIError is returned when the API answers with an error status or
// success=false.
type APIError struct {
	StatusCode int
	Errors     []apiMessage
}

func (e *APIError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("cloudflare API: status %d", e.StatusCode)
	}
	msgs := make([]string, 0, len(e.Errors))
	for _, m := range e.Errors {
		msgs = append(msgs, fmt.Sprintf("%d: %s", m.Code, m.Message))
	}
	return fmt.Sprintf("cloudflare API: status %d: %s", e.StatusCode, strings.Join(msgs, "; "))
}
