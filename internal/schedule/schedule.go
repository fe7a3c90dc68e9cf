// Package schedule scrapes the day's MLB matchups from ESPN.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pable/go-mlb-hits/internal/dataset"
)

// DefaultBaseURL is ESPN's MLB schedule page; the date is appended as YYYYMMDD.
const DefaultBaseURL = "https://www.espn.com/mlb/schedule/_/date/"

// ErrNoGames is returned when the schedule page lists no matchups.
var ErrNoGames = errors.New("schedule: no games found")

// Columns of todays_games.csv.
var Columns = []string{"Date", "Away Team", "Home Team"}

// Game is one scheduled matchup.
type Game struct {
	Date time.Time
	Away string
	Home string
}

// Client fetches schedule pages.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client for baseURL (DefaultBaseURL when empty).
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{baseURL: baseURL, http: &http.Client{Timeout: timeout}}
}

// Games returns the matchups listed for date.
func (c *Client) Games(ctx context.Context, date time.Time) ([]Game, error) {
	u := c.baseURL + date.Format("20060102")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; mlbhits)")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("schedule: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("schedule: HTTP %d from %s", resp.StatusCode, u)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("schedule: parse html: %w", err)
	}
	games := parse(doc, date)
	if len(games) == 0 {
		return nil, ErrNoGames
	}
	return games, nil
}

// parse reads one game per schedule row that names at least two teams.
// The first team anchor is the away side.
func parse(doc *goquery.Document, date time.Time) []Game {
	var games []Game
	doc.Find(".Schedule__Table tbody tr").Each(func(_ int, row *goquery.Selection) {
		var teams []string
		row.Find("a.AnchorLink").Each(func(_ int, a *goquery.Selection) {
			if name := strings.TrimSpace(a.Text()); name != "" {
				teams = append(teams, name)
			}
		})
		if len(teams) < 2 {
			return
		}
		games = append(games, Game{Date: date, Away: teams[0], Home: teams[1]})
	})
	return games
}

// Frame renders games as the todays_games.csv table.
func Frame(games []Game) *dataset.Frame {
	f := dataset.New(Columns...)
	for _, g := range games {
		f.Append(g.Date.Format(time.DateOnly), g.Away, g.Home)
	}
	return f
}
