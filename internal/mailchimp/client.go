package mailchimp

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hlcc-africa/site-api/pkg/logging"
)

const defaultUserAgent = "hlcc-site-api/0.1"

// Config controls how the Mailchimp client behaves.
type Config struct {
	// APIKey in the provider's <key>-<region> format. The region suffix
	// selects the datacenter base URL.
	APIKey     string
	AudienceID string
	// BaseURL overrides the derived datacenter URL. Tests point this at
	// an httptest server.
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *logging.Logger
	UserAgent  string
}

// Client wraps the Mailchimp marketing API endpoints used by the form
// relay: list-member create and update.
type Client struct {
	apiKey     string
	audienceID string
	baseURL    string
	httpClient *http.Client
	logger     *logging.Logger
	userAgent  string
}

// New creates a configured Client with sane defaults.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("mailchimp: API key is required")
	}
	if strings.TrimSpace(cfg.AudienceID) == "" {
		return nil, errors.New("mailchimp: audience ID is required")
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		// Key format is <key>-<region>, e.g. abc123-us21.
		idx := strings.LastIndex(cfg.APIKey, "-")
		if idx < 0 || idx == len(cfg.APIKey)-1 {
			return nil, errors.New("mailchimp: invalid API key format")
		}
		baseURL = fmt.Sprintf("https://%s.api.mailchimp.com", cfg.APIKey[idx+1:])
	}
	baseURL = strings.TrimRight(baseURL, "/")
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		apiKey:     cfg.APIKey,
		audienceID: cfg.AudienceID,
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
		userAgent:  userAgent,
	}, nil
}

// Contact is a marketing-list contact. Email is required; everything
// else is merged into the member only when present.
type Contact struct {
	Email       string            `json:"email"`
	FirstName   string            `json:"firstName,omitempty"`
	LastName    string            `json:"lastName,omitempty"`
	Phone       string            `json:"phone,omitempty"`
	Company     string            `json:"company,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
	MergeFields map[string]string `json:"mergeFields,omitempty"`
}

// UpsertResult reports which path succeeded, for observability.
type UpsertResult struct {
	Updated bool
	Message string
}

type memberPayload struct {
	EmailAddress string            `json:"email_address,omitempty"`
	Status       string            `json:"status"`
	Tags         []string          `json:"tags"`
	MergeFields  map[string]string `json:"merge_fields,omitempty"`
}

// MemberID computes the canonical member identifier the provider uses
// to address an existing contact: the lowercase hex MD5 digest of the
// lowercased email address. Any other encoding addresses the wrong
// resource.
func MemberID(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(email)))
	return hex.EncodeToString(sum[:])
}

// Upsert adds the contact to the audience, tagged with formType ahead
// of the contact's own tags. When the member already exists the client
// recovers by updating the resource addressed by MemberID instead.
func (c *Client) Upsert(ctx context.Context, contact Contact, formType string) (*UpsertResult, error) {
	if strings.TrimSpace(contact.Email) == "" {
		return nil, errors.New("mailchimp: contact email is required")
	}

	payload := memberPayload{
		EmailAddress: contact.Email,
		Status:       "subscribed",
		Tags:         append([]string{formType}, contact.Tags...),
		MergeFields:  buildMergeFields(contact),
	}

	createPath := fmt.Sprintf("/3.0/lists/%s/members", c.audienceID)
	err := c.invoke(ctx, http.MethodPost, createPath, payload, contact.Email)
	if err == nil {
		c.logger.Info("mailchimp contact added", "email", contact.Email, "form_type", formType)
		return &UpsertResult{Message: "Successfully added to Mailchimp"}, nil
	}
	if !IsConflict(err) {
		return nil, err
	}

	// Member exists: resend status, tags and merge fields to the
	// canonical member resource.
	payload.EmailAddress = ""
	updatePath := fmt.Sprintf("/3.0/lists/%s/members/%s", c.audienceID, MemberID(contact.Email))
	if err := c.invoke(ctx, http.MethodPatch, updatePath, payload, contact.Email); err != nil {
		return nil, err
	}
	c.logger.Info("mailchimp contact updated", "email", contact.Email, "form_type", formType)
	return &UpsertResult{Updated: true, Message: "Contact updated in Mailchimp"}, nil
}

// buildMergeFields assembles the provider merge-field object. Absent
// optional fields are never sent as empty keys.
func buildMergeFields(contact Contact) map[string]string {
	fields := make(map[string]string)
	if contact.FirstName != "" {
		fields["FNAME"] = contact.FirstName
	}
	if contact.LastName != "" {
		fields["LNAME"] = contact.LastName
	}
	if contact.Phone != "" {
		fields["PHONE"] = contact.Phone
	}
	if contact.Company != "" {
		fields["COMPANY"] = contact.Company
	}
	for k, v := range contact.MergeFields {
		fields[k] = v
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func (c *Client) invoke(ctx context.Context, method, path string, payload any, email string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("mailchimp: marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("mailchimp: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("mailchimp: http error: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("mailchimp: read response: %w", err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return decodeError(resp.StatusCode, data, email)
}
