// Package device talks to the sensing board over plain HTTP.
package device

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"energy_gauge/internal/models"
)

// maxBodyBytes caps the payload read from the board.
const maxBodyBytes = 1 << 16

// Client fetches measurement snapshots from one device.
type Client struct {
	url  string
	http *http.Client
}

// NewClient builds a client for host, which may be a bare address
// ("172.20.10.5"), host:port, or a full URL. A zero timeout means none.
func NewClient(host string, timeout time.Duration) *Client {
	return &Client{
		url:  normalizeURL(host),
		http: &http.Client{Timeout: timeout},
	}
}

// URL is the endpoint polled by Fetch.
func (c *Client) URL() string { return c.url }

// normalizeURL turns a host into the root URL of the device.
func normalizeURL(host string) string {
	host = strings.TrimSpace(host)
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	if !strings.HasSuffix(host, "/") {
		host += "/"
	}
	return host
}

// Fetch requests the current snapshot. Transport failures, non-2xx statuses
// and non-object bodies are errors; bad individual fields are not and come
// back as NaN.
func (c *Client) Fetch(ctx context.Context) (models.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("fetch %s: %w", c.url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return models.Snapshot{}, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status, URL: c.url}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("read body: %w", err)
	}
	return Decode(body)
}

// Decode parses a device payload.
func Decode(body []byte) (models.Snapshot, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return models.Snapshot{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if fields == nil {
		// a literal null decodes without error
		return models.Snapshot{}, ErrDecode
	}

	num := func(key string) float64 {
		raw, ok := fields[key]
		return parseNumber(raw, ok)
	}
	text := func(key string) string {
		raw, ok := fields[key]
		return parseText(raw, ok)
	}

	return models.Snapshot{
		VoltageV:         num(keyVoltage),
		CurrentMA:        num(keyCurrent),
		PowerMW:          num(keyPower),
		EnergyJoules:     num(keyEnergy),
		PotentialEJoules: num(keyPotential),
		Status:           text(keyStatus),
		TargetV:          num(keyTarget),
		Timestamp:        text(keyTimestamp),
	}, nil
}
