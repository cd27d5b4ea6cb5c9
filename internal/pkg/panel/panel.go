// Package panel talks to the Karyx management panel's device API.
package panel

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/karyx/edge-firmware/internal/pkg/model"
	"go.uber.org/zap"
)

// Every panel call is bounded by this ceiling; exceeding it is treated like
// any other transport failure.
const callTimeout = 10 * time.Second

var (
	ErrRegistration = errors.New("device registration failed")
	ErrReport       = errors.New("status report failed")
)

// Client is the capability the firmware needs from the panel. Register is
// called at most once, at startup, when no device id is configured. Report
// failures are non-fatal to callers; there is no retry within a cycle.
type Client interface {
	Register(ctx context.Context, req model.RegisterRequest) (string, error)
	Report(ctx context.Context, deviceID string, req model.ReportRequest) error
}

type client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

func New(baseURL string) *client {
	return &client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: callTimeout},
		logger:  zap.L(),
	}
}

// Register creates the device on the panel and returns the assigned id.
func (c *client) Register(ctx context.Context, req model.RegisterRequest) (string, error) {
	var resp model.RegisterResponse
	if err := c.call(ctx, http.MethodPost, c.baseURL+"/devices", req, &resp); err != nil {
		return "", fmt.Errorf("%w: %w", ErrRegistration, err)
	}
	c.logger.Info("device registered", zap.String("device_id", resp.ID), zap.String("name", req.Name))
	return resp.ID, nil
}

// Report pushes the current device state to the panel's status endpoint.
func (c *client) Report(ctx context.Context, deviceID string, req model.ReportRequest) error {
	url := fmt.Sprintf("%s/devices/%s", c.baseURL, deviceID)
	if err := c.call(ctx, http.MethodPut, url, req, nil); err != nil {
		return fmt.Errorf("%w: %w", ErrReport, err)
	}
	return nil
}

func (c *client) call(ctx context.Context, method, url string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// LocalIPAddress returns the preferred outbound address for registration
// metadata. No packets are sent; on failure it falls back to loopback.
func LocalIPAddress() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return "127.0.0.1"
	}
	defer conn.Close()
	if addr, ok := conn.LocalAddr().(*net.UDPAddr); ok {
		return addr.IP.String()
	}
	return "127.0.0.1"
}
