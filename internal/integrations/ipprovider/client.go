package ipprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// Known providers
const (
	NameIpify  = "ipify"
	NameIpapi  = "ipapi"
	NameIpdata = "ipdata"
)

// maxBodySize ответы сервисов определения IP небольшие
const maxBodySize = 64 << 10

// Client клиент одного внешнего сервиса определения IP
type Client struct {
	name       string
	url        string
	httpClient *http.Client
	log        Logger
}

// NewClient создает клиент для url; transport может быть nil
func NewClient(name, url string, timeout time.Duration, transport http.RoundTripper, log Logger) *Client {
	return &Client{
		name: name,
		url:  url,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		log: log,
	}
}

func (c *Client) Name() string {
	return c.name
}

// DiscoverIP запрашивает сервис и возвращает IP из поля "ip"
func (c *Client) DiscoverIP(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var payload ipResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&payload); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	ip := strings.TrimSpace(payload.IP)
	if ip == "" || net.ParseIP(ip) == nil {
		return "", fmt.Errorf("%w: %s returned %q", ErrNoAddress, c.name, payload.IP)
	}

	c.log.Info("IP discovered via %s", c.name)
	return ip, nil
}
