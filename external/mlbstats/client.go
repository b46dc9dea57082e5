package mlbstats

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/sourcegraph/conc/pool"

	"github.com/mlasky/diamondsync/internal/domain/mlb"
	"github.com/mlasky/diamondsync/internal/platform/logging"
	"github.com/mlasky/diamondsync/internal/platform/resilience"
	"github.com/mlasky/diamondsync/internal/usecase"
)

const (
	defaultBaseURL         = "https://statsapi.mlb.com/api/v1"
	defaultBoxscoreWorkers = 4
	maxResponseBytes       = 6 << 20
)

var errMLBStatsTransient = crerr.New("mlb stats transient failure")

type ClientConfig struct {
	HTTPClient      *http.Client
	BaseURL         string
	Timeout         time.Duration
	MaxRetries      int
	BoxscoreWorkers int
	Logger          *logging.Logger
	CircuitBreaker  resilience.CircuitBreakerConfig
}

// Client reads the official MLB stats API. All endpoints are public and
// read-only; no authentication is involved.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	workers        int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	workers := cfg.BoxscoreWorkers
	if workers < 1 {
		workers = defaultBoxscoreWorkers
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		maxRetries:     cfg.MaxRetries,
		workers:        workers,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// FetchGamesByDate lists the games scheduled on one date ("YYYY-MM-DD").
func (c *Client) FetchGamesByDate(ctx context.Context, gameDate string) ([]mlb.Game, error) {
	gameDate = strings.TrimSpace(gameDate)
	if gameDate == "" {
		return nil, fmt.Errorf("game date is required")
	}

	query := map[string]string{
		"sportId": "1",
		"date":    gameDate,
	}
	var envelope scheduleEnvelope
	if err := c.doJSON(ctx, "/schedule", query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch schedule date=%s: %w", gameDate, err)
	}

	games := make([]mlb.Game, 0, 16)
	for _, day := range envelope.Dates {
		for _, item := range day.Games {
			if item.GamePk <= 0 {
				continue
			}
			date := strings.TrimSpace(item.OfficialDate)
			if date == "" {
				date = day.Date
			}
			games = append(games, mlb.Game{
				GamePk:    item.GamePk,
				GameDate:  date,
				HomeTeam:  strings.TrimSpace(item.Teams.Home.Team.Name),
				AwayTeam:  strings.TrimSpace(item.Teams.Away.Team.Name),
				HomeScore: item.Teams.Home.Score,
				AwayScore: item.Teams.Away.Score,
				Status:    strings.TrimSpace(item.Status.DetailedState),
			})
		}
	}
	sort.Slice(games, func(i, j int) bool { return games[i].GamePk < games[j].GamePk })
	return games, nil
}

// FetchBoxscore returns the batting lines of both teams for one game.
// Players without an at bat or a walk are skipped; pitchers who never
// batted carry an empty batting block.
func (c *Client) FetchBoxscore(ctx context.Context, gamePk int64) ([]mlb.BatterGameStat, error) {
	if gamePk <= 0 {
		return nil, fmt.Errorf("game pk must be greater than zero")
	}

	var envelope boxscoreEnvelope
	if err := c.doJSON(ctx, fmt.Sprintf("/game/%d/boxscore", gamePk), nil, &envelope); err != nil {
		return nil, fmt.Errorf("fetch boxscore game_pk=%d: %w", gamePk, err)
	}

	stats := make([]mlb.BatterGameStat, 0, 32)
	for _, side := range []boxscoreTeam{envelope.Teams.Away, envelope.Teams.Home} {
		for _, entry := range side.Players {
			batting := entry.Stats.Batting
			if batting.AtBats == 0 && batting.BaseOnBalls == 0 && batting.Runs == 0 {
				continue
			}
			stats = append(stats, mlb.BatterGameStat{
				GamePk:         gamePk,
				PlayerID:       entry.Person.ID,
				TeamID:         side.Team.ID,
				PlayerName:     strings.TrimSpace(entry.Person.FullName),
				AtBats:         batting.AtBats,
				Hits:           batting.Hits,
				Runs:           batting.Runs,
				Doubles:        batting.Doubles,
				Triples:        batting.Triples,
				HomeRuns:       batting.HomeRuns,
				RBI:            batting.RBI,
				Walks:          batting.BaseOnBalls,
				StolenBases:    batting.StolenBases,
				CaughtStealing: batting.CaughtStealing,
			})
		}
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].TeamID != stats[j].TeamID {
			return stats[i].TeamID < stats[j].TeamID
		}
		return stats[i].PlayerID < stats[j].PlayerID
	})
	return stats, nil
}

// FetchDay combines the schedule and every game's boxscore for a date.
// Boxscores are fetched concurrently; one failed boxscore fails the
// whole call so the caller never ingests a partial day.
func (c *Client) FetchDay(ctx context.Context, gameDate string) ([]mlb.Game, []mlb.BatterGameStat, error) {
	games, err := c.FetchGamesByDate(ctx, gameDate)
	if err != nil {
		return nil, nil, err
	}
	if len(games) == 0 {
		return nil, nil, nil
	}

	var (
		mu    sync.Mutex
		stats []mlb.BatterGameStat
	)
	p := pool.New().WithErrors().WithContext(ctx).WithMaxGoroutines(c.workers)
	for _, game := range games {
		gamePk := game.GamePk
		p.Go(func(ctx context.Context) error {
			lines, err := c.FetchBoxscore(ctx, gamePk)
			if err != nil {
				return err
			}
			mu.Lock()
			stats = append(stats, lines...)
			mu.Unlock()
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, nil, fmt.Errorf("fetch boxscores date=%s: %w", gameDate, err)
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].GamePk != stats[j].GamePk {
			return stats[i].GamePk < stats[j].GamePk
		}
		return stats[i].PlayerID < stats[j].PlayerID
	})
	return games, stats, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "mlb stats circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: mlb stats api is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errMLBStatsTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode mlb stats payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errMLBStatsTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errMLBStatsTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: upstream status=%d", errMLBStatsTransient, resp.StatusCode)
			default:
				return nil, fmt.Errorf("upstream status=%d", resp.StatusCode)
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("mlb stats request failed")
	}
	c.logger.WarnContext(ctx, "mlb stats request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}
