package skillspace

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Client struct {
	baseURL  string
	apiKey   string
	courseID string
	groupID  string
	http     *http.Client
}

func NewClient(apiKey, baseURL, courseID, groupID string) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiKey:   apiKey,
		courseID: courseID,
		groupID:  groupID,
		// Skillspace can be slow on invites; anything past 25s counts as failed.
		http: &http.Client{Timeout: 25 * time.Second},
	}
}

// InviteStudent enrolls the email into the configured course.
// The API wants a php-style array: courses[COURSE_ID]=GROUP_ID, and an
// empty group id means "let Skillspace pick one". Any 2xx is success.
func (c *Client) InviteStudent(ctx context.Context, email, name string) error {
	endpoint := c.baseURL + "/api/open/v1/course/student-invite"

	params := url.Values{}
	params.Set("token", c.apiKey)
	params.Set("email", email)
	params.Set("name", name)
	params.Set(fmt.Sprintf("courses[%s]", c.courseID), c.groupID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("skillspace request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &InviteError{Status: 0, Body: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		log.Printf("✅ skillspace: invited %s to course %s", email, c.courseID)
		return nil
	}

	body, _ := io.ReadAll(resp.Body)
	return &InviteError{Status: resp.StatusCode, Body: string(body)}
}
