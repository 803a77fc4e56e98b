// Package scheduleclient fetches weekly schedules from a remote
// schedule service over HTTP, for deployments where availability is
// owned by another system.
package scheduleclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/go-querystring/query"

	"github.com/slotwise/bookings/internal/domain"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type scheduleQuery struct {
	OwnerID int64 `url:"owner_id"`
}

// GetUserSchedule fetches one owner's weekly schedule. A 404 means the
// owner has no schedule and returns nil, nil; any other failure is an
// error for the caller to degrade on.
func (c *Client) GetUserSchedule(ctx context.Context, ownerID int64) (domain.WeeklySchedule, error) {
	qs, err := query.Values(scheduleQuery{OwnerID: ownerID})
	if err != nil {
		return nil, fmt.Errorf("encode schedule query: %w", err)
	}

	url := fmt.Sprintf("%s/schedules?%s", c.baseURL, qs.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch schedule: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("schedule service returned %d", resp.StatusCode)
	}

	var schedule domain.WeeklySchedule
	if err := json.NewDecoder(resp.Body).Decode(&schedule); err != nil {
		return nil, fmt.Errorf("decode schedule: %w", err)
	}
	return schedule, nil
}
