// Package statcast fetches and cleans Baseball Savant pitch-level data.
package statcast

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pable/go-mlb-hits/internal/dataset"
)

// DefaultBaseURL is the Baseball Savant search export endpoint.
const DefaultBaseURL = "https://baseballsavant.mlb.com/statcast_search/csv"

// ErrNoData is returned when Savant has no events for the requested range.
var ErrNoData = errors.New("statcast: no events in range")

// Client downloads Statcast search exports.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a Savant client. An empty baseURL selects DefaultBaseURL;
// a zero timeout leaves requests unbounded.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Fetch returns every regular-season pitch thrown between start and end
// (inclusive) as a raw frame.
func (c *Client) Fetch(ctx context.Context, start, end time.Time) (*dataset.Frame, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("statcast: end %s before start %s", end.Format(time.DateOnly), start.Format(time.DateOnly))
	}
	params := url.Values{
		"all":               {"true"},
		"type":              {"details"},
		"player_type":       {"batter"},
		"hfGT":              {"R|"},
		"game_date_gt":      {start.Format(time.DateOnly)},
		"game_date_lt":      {end.Format(time.DateOnly)},
		"min_pitches":       {"0"},
		"min_results":       {"0"},
		"group_by":          {"name"},
		"sort_col":          {"pitches"},
		"player_event_sort": {"api_p_release_speed"},
		"sort_order":        {"desc"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("statcast: GET: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return nil, fmt.Errorf("statcast: HTTP %d: %s", resp.StatusCode, string(b))
	}

	f, err := dataset.Read(resp.Body)
	if errors.Is(err, dataset.ErrNoHeader) {
		return nil, ErrNoData
	}
	if err != nil {
		return nil, fmt.Errorf("statcast: decode: %w", err)
	}
	if f.Empty() || !f.Has("batter") {
		return nil, ErrNoData
	}
	return f, nil
}
