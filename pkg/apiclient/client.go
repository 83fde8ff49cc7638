package apiclient

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/go-resty/resty/v2"
	"github.com/mergington/activities/pkg/activities"
	"github.com/pkg/errors"
)

// Client is the resty backed ActivitiesAPI. Every call is a single attempt.
type Client struct {
	client *resty.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	client := resty.New().
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetTimeout(timeout).
		SetRetryCount(0)

	return &Client{client: client}
}

func (c *Client) BaseURL() string {
	return c.client.BaseURL
}

// GetActivities retrieves the catalog. A non-2xx status is an error even when
// the body is valid JSON.
func (c *Client) GetActivities(ctx context.Context) (*activities.Catalog, error) {
	start := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get("/activities")
	if err != nil {
		recordRequest(endpointList, outcomeTransport, time.Since(start).Seconds())
		return nil, errors.Wrap(err, "GET /activities")
	}

	if !resp.IsSuccess() {
		recordRequest(endpointList, outcomeRejected, time.Since(start).Seconds())
		return nil, ToErrorFromResponse(resp)
	}

	var catalog activities.Catalog
	if err := json.Unmarshal(resp.Body(), &catalog); err != nil {
		recordRequest(endpointList, outcomeDecode, time.Since(start).Seconds())
		return nil, errors.Wrap(err, "GET /activities: unable to parse catalog")
	}

	recordRequest(endpointList, outcomeOK, time.Since(start).Seconds())
	log.Debugf("Fetched %d activities", catalog.Len())

	return &catalog, nil
}

func (c *Client) Signup(ctx context.Context, activity, email string) (string, error) {
	return c.mutate(ctx, endpointSignup, activity, email)
}

func (c *Client) Unregister(ctx context.Context, activity, email string) (string, error) {
	return c.mutate(ctx, endpointUnregister, activity, email)
}

// mutate posts email to /activities/{activity}/{action} and returns the
// server's success message.
func (c *Client) mutate(ctx context.Context, action, activity, email string) (string, error) {
	var result struct {
		Message string `json:"message"`
	}

	start := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetRawPathParam("activity", EncodePathSegment(activity)).
		SetFormData(map[string]string{"email": email}).
		Post("/activities/{activity}/" + action)
	if err != nil {
		recordRequest(action, outcomeTransport, time.Since(start).Seconds())
		return "", errors.Wrapf(err, "POST %s", action)
	}

	if !resp.IsSuccess() {
		recordRequest(action, outcomeRejected, time.Since(start).Seconds())
		return "", ToErrorFromResponse(resp)
	}

	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		recordRequest(action, outcomeDecode, time.Since(start).Seconds())
		return "", errors.Wrapf(err, "POST %s: unable to parse response", action)
	}

	recordRequest(action, outcomeOK, time.Since(start).Seconds())

	return result.Message, nil
}

// EncodePathSegment percent-encodes s the way a browser's encodeURIComponent
// does: everything but letters, digits and -_.!~*'() is escaped.
func EncodePathSegment(s string) string {
	const hex = "0123456789ABCDEF"

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if shouldKeep(ch) {
			b.WriteByte(ch)
			continue
		}

		b.WriteByte('%')
		b.WriteByte(hex[ch>>4])
		b.WriteByte(hex[ch&0x0f])
	}

	return b.String()
}

func shouldKeep(ch byte) bool {
	switch {
	case 'a' <= ch && ch <= 'z', 'A' <= ch && ch <= 'Z', '0' <= ch && ch <= '9':
		return true
	}

	switch ch {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}

	return false
}
