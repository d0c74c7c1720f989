// Package spond talks to the Spond API and normalizes its wire formats.
package spond

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

	"club-sync/internal/config"
)

// Api is the surface the sync and push services depend on. The concrete
// Client talks HTTP; tests substitute fakes.
type Api interface {
	GetEvents(ctx context.Context, q EventQuery) ([]RawRecord, error)
	GetGroups(ctx context.Context) ([]RawRecord, error)
	GetGroup(ctx context.Context, id string) (RawRecord, error)
	CreateEvent(ctx context.Context, payload RawRecord, groupID string) (RawRecord, error)
	UpdateEvent(ctx context.Context, id string, payload RawRecord) (RawRecord, error)
	UpdateEventResponse(ctx context.Context, eventID, memberID string, response string) (RawRecord, error)
}

// EventQuery narrows an event fetch.
type EventQuery struct {
	GroupID   string
	MaxEvents int
}

// Client is an authenticated Spond API client.
type Client struct {
	baseURL    string
	username   string
	password   string
	token      string
	httpClient *http.Client
}

// NewClient builds a Client from config. Login happens lazily on the first
// request.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.SpondAPIURL, "/"),
		username:   cfg.SpondUsername,
		password:   cfg.SpondPassword,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// NewClientWithBaseURL builds a Client against a custom base URL (for testing).
func NewClientWithBaseURL(baseURL, username, password string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		username:   username,
		password:   password,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) login(ctx context.Context) error {
	if c.username == "" || c.password == "" {
		return &AuthError{Detail: "SPOND_USERNAME / SPOND_PASSWORD not configured"}
	}

	body, _ := json.Marshal(map[string]string{
		"email":    c.username,
		"password": c.password,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/login", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Op: "login", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &AuthError{Status: resp.StatusCode, Detail: string(detail)}
	}

	var result struct {
		LoginToken string `json:"loginToken"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode login response: %w", err)
	}
	if result.LoginToken == "" {
		return &AuthError{Status: resp.StatusCode, Detail: "empty login token"}
	}

	c.token = result.LoginToken
	return nil
}

// doRequest sends one authenticated request, logging in first if needed.
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	if c.token == "" {
		if err := c.login(ctx); err != nil {
			return nil, err
		}
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: method + " " + path, Err: err}
	}

	if err := checkStatus(resp); err != nil {
		resp.Body.Close()
		return nil, err
	}

	return resp, nil
}

// checkStatus maps error responses onto the typed error taxonomy.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode < 400 {
		return nil
	}

	detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &AuthError{Status: resp.StatusCode, Detail: string(detail)}
	case resp.StatusCode == http.StatusTooManyRequests:
		return &RateLimitError{RetryAfter: resp.Header.Get("Retry-After")}
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		return &ValidationError{Status: resp.StatusCode, Detail: string(detail)}
	default:
		return fmt.Errorf("spond: unexpected status %d: %s", resp.StatusCode, string(detail))
	}
}

// GetEvents fetches events, optionally filtered by group, newest first.
func (c *Client) GetEvents(ctx context.Context, q EventQuery) ([]RawRecord, error) {
	params := url.Values{}
	max := q.MaxEvents
	if max <= 0 {
		max = 100
	}
	params.Set("max", strconv.Itoa(max))
	params.Set("scheduled", "true")
	if q.GroupID != "" {
		params.Set("groupId", q.GroupID)
	}

	resp, err := c.doRequest(ctx, http.MethodGet, "/sponds?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var events []RawRecord
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	return events, nil
}

// GetGroups fetches all groups the account can see, members included.
func (c *Client) GetGroups(ctx context.Context) ([]RawRecord, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/groups/", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var groups []RawRecord
	if err := json.NewDecoder(resp.Body).Decode(&groups); err != nil {
		return nil, fmt.Errorf("decode groups: %w", err)
	}
	return groups, nil
}

// GetGroup fetches a single group by id. Returns ErrNotFound for a 404.
func (c *Client) GetGroup(ctx context.Context, id string) (RawRecord, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/groups/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var group RawRecord
	if err := json.NewDecoder(resp.Body).Decode(&group); err != nil {
		return nil, fmt.Errorf("decode group: %w", err)
	}
	return group, nil
}

// CreateEvent creates an event remotely and returns the created record,
// including the remote-assigned id. When groupID is set the event is
// addressed to that group's members.
func (c *Client) CreateEvent(ctx context.Context, payload RawRecord, groupID string) (RawRecord, error) {
	body := RawRecord{}
	for k, v := range payload {
		body[k] = v
	}
	if groupID != "" {
		recipients := RawRecord{"group": RawRecord{"id": groupID}}
		if members, ok := payload.StrList("invitedMemberIds"); ok {
			recipients["groupMembers"] = members
			delete(body, "invitedMemberIds")
		}
		body["recipients"] = recipients
	}
	// The API assigns the id; a leftover local one would be rejected.
	delete(body, "id")

	resp, err := c.doRequest(ctx, http.MethodPost, "/sponds", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var created RawRecord
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("decode created event: %w", err)
	}
	return created, nil
}

// UpdateEvent applies payload to an existing remote event and returns the
// updated record. Sending an identical payload is a remote no-op.
func (c *Client) UpdateEvent(ctx context.Context, id string, payload RawRecord) (RawRecord, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/sponds/"+url.PathEscape(id), payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var updated RawRecord
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		return nil, fmt.Errorf("decode updated event: %w", err)
	}
	return updated, nil
}

// UpdateEventResponse changes one member's attendance answer on a remote
// event and returns the remote's view of the result.
func (c *Client) UpdateEventResponse(ctx context.Context, eventID, memberID string, response string) (RawRecord, error) {
	path := "/sponds/" + url.PathEscape(eventID) + "/responses/" + url.PathEscape(memberID)
	resp, err := c.doRequest(ctx, http.MethodPut, path, RawRecord{"response": response})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var updated RawRecord
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		return nil, fmt.Errorf("decode response update: %w", err)
	}
	return updated, nil
}
