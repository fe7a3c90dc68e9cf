// Package fangraphs fetches season leaderboards from the FanGraphs API and
// normalizes them into IDfg-keyed frames.
package fangraphs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/pable/go-mlb-hits/internal/dataset"
	"github.com/pable/go-mlb-hits/internal/model"
)

// DefaultBaseURL is the FanGraphs major-league leaderboard endpoint.
const DefaultBaseURL = "https://www.fangraphs.com/api/leaders/major-league/data"

// ErrNoRows is returned when a leaderboard comes back empty.
var ErrNoRows = errors.New("fangraphs: leaderboard is empty")

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// BattingColumns are the leaderboard fields exported for hitters, in output order.
var BattingColumns = []string{
	"G", "PA", "HR", "R", "RBI", "SB", "BB%", "K%", "ISO", "BABIP",
	"AVG", "OBP", "SLG", "wOBA", "xwOBA", "wRC+", "WAR",
}

// PitchingColumns are the leaderboard fields exported for pitchers.
var PitchingColumns = []string{
	"W", "L", "ERA", "G", "GS", "IP", "K/9", "BB/9", "HR/9",
	"BABIP", "LOB%", "FIP", "xFIP", "WAR",
}

// Client is a minimal FanGraphs leaderboard client.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a leaderboard client. An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{baseURL: baseURL, http: &http.Client{Timeout: timeout}}
}

// Batting returns every hitter's season line for season (no qualifying minimum).
func (c *Client) Batting(ctx context.Context, season int) (*dataset.Frame, error) {
	rows, err := c.leaders(ctx, "bat", season)
	if err != nil {
		return nil, err
	}
	return toFrame(rows, season, BattingColumns), nil
}

// Pitching returns every pitcher's season line for season.
func (c *Client) Pitching(ctx context.Context, season int) (*dataset.Frame, error) {
	rows, err := c.leaders(ctx, "pit", season)
	if err != nil {
		return nil, err
	}
	return toFrame(rows, season, PitchingColumns), nil
}

func (c *Client) leaders(ctx context.Context, stats string, season int) ([]map[string]any, error) {
	s := strconv.Itoa(season)
	params := url.Values{
		"pos":       {"all"},
		"stats":     {stats},
		"lg":        {"all"},
		"qual":      {"0"},
		"season":    {s},
		"season1":   {s},
		"month":     {"0"},
		"ind":       {"0"},
		"type":      {"8"},
		"pageitems": {"2000000000"},
		"pagenum":   {"1"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fangraphs: GET %s: %w", stats, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return nil, fmt.Errorf("fangraphs: HTTP %d: %s", resp.StatusCode, string(b))
	}

	var payload struct {
		Data []map[string]any `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("fangraphs: decode: %w", err)
	}
	if len(payload.Data) == 0 {
		return nil, ErrNoRows
	}
	return payload.Data, nil
}

// toFrame flattens API rows into IDfg, Season, Name, Team + cols. The API's
// "Name"/"Team" fields carry HTML links, so the plain-text variants are used.
func toFrame(rows []map[string]any, season int, cols []string) *dataset.Frame {
	header := append([]string{model.ColTargetID, "Season", model.ColName, model.ColTeam}, cols...)
	f := dataset.New(header...)
	for _, r := range rows {
		rec := make([]string, 0, len(header))
		rec = append(rec,
			cell(r["playerid"]),
			strconv.Itoa(season),
			firstNonEmpty(cell(r["PlayerName"]), cell(r["Name"])),
			firstNonEmpty(cell(r["TeamNameAbb"]), cell(r["TeamName"]), cell(r["Team"])),
		)
		for _, col := range cols {
			rec = append(rec, cell(r[col]))
		}
		f.Append(rec...)
	}
	return f
}

func cell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return dataset.FormatFloat(x)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
