// Package ergast is a small client for the Ergast-compatible standings
// endpoints served by the Jolpica F1 API.
package ergast

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	perrors "github.com/dbmrq/paddock/internal/errors"
	"github.com/dbmrq/paddock/internal/logging"
	"github.com/dbmrq/paddock/internal/standings"
)

const (
	// DefaultBaseURL is the Jolpica mirror of the Ergast API.
	DefaultBaseURL = "https://api.jolpi.ca/ergast/f1"
	// DefaultTimeout bounds a single standings request.
	DefaultTimeout = 8 * time.Second
)

// Client fetches standings for a season.
type Client struct {
	HTTPClient *http.Client
	BaseURL    string
	UserAgent  string
}

// NewClient creates a client for baseURL. Empty values fall back to the defaults.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		HTTPClient: &http.Client{Timeout: timeout},
		BaseURL:    strings.TrimRight(baseURL, "/"),
		UserAgent:  "paddock",
	}
}

// DriverStandings returns the drivers' championship for year, ordered by position.
// A season without results yields an empty slice.
func (c *Client) DriverStandings(ctx context.Context, year int) ([]standings.DriverStanding, error) {
	resp, err := c.get(ctx, fmt.Sprintf("%s/%d/driverstandings.json", c.BaseURL, year))
	if err != nil {
		return nil, fmt.Errorf("driver standings: %w", err)
	}

	lists := resp.MRData.StandingsTable.StandingsLists
	if len(lists) == 0 {
		return []standings.DriverStanding{}, nil
	}

	rows := make([]standings.DriverStanding, 0, len(lists[0].DriverStandings))
	for _, item := range lists[0].DriverStandings {
		team := ""
		if len(item.Constructors) > 0 {
			team = item.Constructors[0].Name
		}
		rows = append(rows, standings.DriverStanding{
			Position: parsePosition(item.Position, item.PositionText),
			Driver:   strings.TrimSpace(item.Driver.GivenName + " " + item.Driver.FamilyName),
			Team:     team,
			Points:   parseFloat(item.Points),
			Wins:     parseInt(item.Wins),
		})
	}
	standings.SortDrivers(rows)
	return rows, nil
}

// ConstructorStandings returns the constructors' championship for year, ordered by position.
// A season without results yields an empty slice.
func (c *Client) ConstructorStandings(ctx context.Context, year int) ([]standings.ConstructorStanding, error) {
	resp, err := c.get(ctx, fmt.Sprintf("%s/%d/constructorstandings.json", c.BaseURL, year))
	if err != nil {
		return nil, fmt.Errorf("constructor standings: %w", err)
	}

	lists := resp.MRData.StandingsTable.StandingsLists
	if len(lists) == 0 {
		return []standings.ConstructorStanding{}, nil
	}

	rows := make([]standings.ConstructorStanding, 0, len(lists[0].ConstructorStandings))
	for _, item := range lists[0].ConstructorStandings {
		rows = append(rows, standings.ConstructorStanding{
			Position:    parsePosition(item.Position, item.PositionText),
			Constructor: item.Constructor.Name,
			Points:      parseFloat(item.Points),
			Wins:        parseInt(item.Wins),
		})
	}
	standings.SortConstructors(rows)
	return rows, nil
}

func (c *Client) get(ctx context.Context, rawURL string) (*response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.UserAgent)

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, perrors.NetworkUnavailable(hostOf(rawURL), err)
	}
	defer resp.Body.Close()

	logging.Debug("standings request", "url", rawURL, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, perrors.APIStatus(rawURL, resp.StatusCode)
	}

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, perrors.DecodeFailed("standings response", err)
	}
	return &out, nil
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}

// parsePosition reads the numeric position, falling back to positionText.
// Unclassified entries ("-", "D", "E") become 0.
func parsePosition(position, text string) int {
	if n := parseInt(position); n > 0 {
		return n
	}
	return parseInt(text)
}

func parseInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}
