package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/atelierhq/atelier/pkg/domain"
)

// Client is the Atelier API client.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a new API client.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GetMe returns the authenticated member's profile.
func (c *Client) GetMe(ctx context.Context) (*domain.Member, error) {
	var m domain.Member
	if err := c.get(ctx, "/api/me", &m); err != nil {
		return nil, fmt.Errorf("client.GetMe: %w", err)
	}
	return &m, nil
}

// --- Roles ---

// GetMemberRoles returns the role assignment for a member.
func (c *Client) GetMemberRoles(ctx context.Context, userID string) (*domain.RoleAssignment, error) {
	var a domain.RoleAssignment
	if err := c.get(ctx, "/api/users/"+url.PathEscape(userID)+"/roles", &a); err != nil {
		return nil, fmt.Errorf("client.GetMemberRoles: %w", err)
	}
	return &a, nil
}

// RequestRoleRequest is the payload for requesting a role upgrade.
type RequestRoleRequest struct {
	Role          domain.UserRole `json:"role"`
	Justification string          `json:"justification,omitempty"`
}

// RequestRole submits a role upgrade request for a member.
func (c *Client) RequestRole(ctx context.Context, userID string, req RequestRoleRequest) error {
	if err := c.post(ctx, "/api/users/"+url.PathEscape(userID)+"/request-role", req, nil); err != nil {
		return fmt.Errorf("client.RequestRole: %w", err)
	}
	return nil
}

// --- Notifications ---

// ListWorkshopNotifications fetches a member's workshop notifications, newest first.
// When unreadOnly is true the server filters out read notifications.
func (c *Client) ListWorkshopNotifications(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error) {
	path := "/api/notifications/workshop/" + url.PathEscape(userID)
	if unreadOnly {
		params := url.Values{}
		params.Set("unreadOnly", "true")
		path += "?" + params.Encode()
	}

	var notifs []domain.Notification
	if err := c.get(ctx, path, &notifs); err != nil {
		return nil, fmt.Errorf("client.ListWorkshopNotifications: %w", err)
	}
	return notifs, nil
}

// MarkNotificationRead marks a single notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	if err := c.doRequest(ctx, http.MethodPut, "/api/notifications/"+url.PathEscape(id)+"/read", nil, nil); err != nil {
		return fmt.Errorf("client.MarkNotificationRead: %w", err)
	}
	return nil
}

// MarkAllNotificationsRead marks every workshop notification for a member as read.
func (c *Client) MarkAllNotificationsRead(ctx context.Context, userID string) error {
	if err := c.doRequest(ctx, http.MethodPut, "/api/notifications/workshop/"+url.PathEscape(userID)+"/read-all", nil, nil); err != nil {
		return fmt.Errorf("client.MarkAllNotificationsRead: %w", err)
	}
	return nil
}

// DeleteNotification permanently removes a notification.
func (c *Client) DeleteNotification(ctx context.Context, id string) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/api/notifications/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("client.DeleteNotification: %w", err)
	}
	return nil
}

// --- Workshops ---

// ListWorkshops fetches upcoming and live workshops.
func (c *Client) ListWorkshops(ctx context.Context) ([]domain.Workshop, error) {
	var workshops []domain.Workshop
	if err := c.get(ctx, "/api/workshops", &workshops); err != nil {
		return nil, fmt.Errorf("client.ListWorkshops: %w", err)
	}
	return workshops, nil
}

// GetWorkshop fetches a single workshop by ID.
func (c *Client) GetWorkshop(ctx context.Context, id string) (*domain.Workshop, error) {
	var w domain.Workshop
	if err := c.get(ctx, "/api/workshops/"+url.PathEscape(id), &w); err != nil {
		return nil, fmt.Errorf("client.GetWorkshop: %w", err)
	}
	return &w, nil
}

// Enroll enrolls the authenticated member in a workshop.
// A full workshop places the member on the waitlist server-side.
func (c *Client) Enroll(ctx context.Context, id string) error {
	if err := c.doRequest(ctx, http.MethodPost, "/api/workshops/"+url.PathEscape(id)+"/enroll", nil, nil); err != nil {
		return fmt.Errorf("client.Enroll: %w", err)
	}
	return nil
}

// Unenroll removes the authenticated member from a workshop.
func (c *Client) Unenroll(ctx context.Context, id string) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/api/workshops/"+url.PathEscape(id)+"/enroll", nil, nil); err != nil {
		return fmt.Errorf("client.Unenroll: %w", err)
	}
	return nil
}

// CreateWorkshopRequest is the payload for scheduling a new workshop.
type CreateWorkshopRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Topic       string    `json:"topic,omitempty"`
	StartsAt    time.Time `json:"starts_at"`
	DurationMin int       `json:"duration_min,omitempty"`
	Capacity    int       `json:"capacity,omitempty"`
}

// CreateWorkshop schedules a new workshop hosted by the authenticated member.
func (c *Client) CreateWorkshop(ctx context.Context, req CreateWorkshopRequest) (*domain.Workshop, error) {
	var created domain.Workshop
	if err := c.post(ctx, "/api/workshops", req, &created); err != nil {
		return nil, fmt.Errorf("client.CreateWorkshop: %w", err)
	}
	return &created, nil
}

// ListMyWorkshops returns workshops hosted by the authenticated member.
func (c *Client) ListMyWorkshops(ctx context.Context) ([]domain.Workshop, error) {
	var workshops []domain.Workshop
	if err := c.get(ctx, "/api/me/workshops", &workshops); err != nil {
		return nil, fmt.Errorf("client.ListMyWorkshops: %w", err)
	}
	return workshops, nil
}

// --- Certificates ---

// ListCertificates returns the authenticated member's completion certificates.
func (c *Client) ListCertificates(ctx context.Context) ([]domain.Certificate, error) {
	var certs []domain.Certificate
	if err := c.get(ctx, "/api/me/certificates", &certs); err != nil {
		return nil, fmt.Errorf("client.ListCertificates: %w", err)
	}
	return certs, nil
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, out)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Error}
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &DecodeError{Err: err}
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}
