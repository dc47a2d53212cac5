// Package api is the typed HTTP client the CLI uses to talk to the nagapi
// server. Every endpoint wraps its result in the same envelope:
// {"success": bool, "content": result-or-message}.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// ---- wire types ----

type Host struct {
	Name      string              `json:"name"`
	Attrs     map[string]string   `json:"attrs"`
	Services  map[string]*Service `json:"services"`
	Downtimes map[string]Downtime `json:"downtimes"`
}

type Service struct {
	Name      string              `json:"name"`
	HostName  string              `json:"host"`
	Attrs     map[string]string   `json:"attrs"`
	Downtimes map[string]Downtime `json:"downtimes"`
}

type Downtime struct {
	ID        int    `json:"id"`
	HostName  string `json:"host"`
	Service   string `json:"service"`
	StartTime int64  `json:"startTime"`
	EndTime   int64  `json:"endTime"`
	Author    string `json:"author"`
	Comment   string `json:"comment"`
}

type State struct {
	Hosts map[string]*Host `json:"hosts"`
}

type CheckResult struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Details string `json:"details"`
}

type Health struct {
	Status string        `json:"status"`
	Checks []CheckResult `json:"checks"`
}

type ScheduleRequest struct {
	Host     string `json:"host"`
	Service  string `json:"service,omitempty"`
	Duration int64  `json:"duration"`
	Author   string `json:"author,omitempty"`
	Comment  string `json:"comment,omitempty"`
}

type CancelRequest struct {
	DowntimeID int    `json:"downtime_id,omitempty"`
	Host       string `json:"host,omitempty"`
	Service    string `json:"service,omitempty"`
}

// ---- endpoints ----

func (c *Client) State() (*State, error) {
	var out State
	if err := c.do("GET", "/api/state", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Host(name string) (*Host, error) {
	var out Host
	if err := c.do("GET", "/api/state/"+name, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Downtimes() ([]Downtime, error) {
	var out []Downtime
	if err := c.do("GET", "/api/downtimes", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Log(lines int) ([]string, error) {
	path := "/api/log"
	if lines > 0 {
		path = fmt.Sprintf("%s?lines=%d", path, lines)
	}
	var out []string
	if err := c.do("GET", path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ScheduleDowntime(req ScheduleRequest) (string, error) {
	var out string
	if err := c.do("POST", "/api/downtime", req, &out); err != nil {
		return "", err
	}
	return out, nil
}

func (c *Client) CancelDowntime(req CancelRequest) (string, error) {
	var out string
	if err := c.do("DELETE", "/api/downtime", req, &out); err != nil {
		return "", err
	}
	return out, nil
}

func (c *Client) Health() (*Health, error) {
	var out Health
	if err := c.do("GET", "/api/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Version() (string, error) {
	resp, err := c.HTTPClient.Get(c.BaseURL + "/api/version")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	var out struct {
		Version string `json:"version"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.Version, nil
}

// do runs one enveloped request. A response with success=false becomes an
// error carrying the server's message.
func (c *Client) do(method, path string, body, result interface{}) error {
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env struct {
		Success bool            `json:"success"`
		Content json.RawMessage `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("bad response (%s): %w", resp.Status, err)
	}
	if !env.Success {
		var msg string
		if json.Unmarshal(env.Content, &msg) != nil {
			msg = string(env.Content)
		}
		return fmt.Errorf("%s", msg)
	}
	if result != nil {
		if err := json.Unmarshal(env.Content, result); err != nil {
			return fmt.Errorf("decode content: %w", err)
		}
	}
	return nil
}
