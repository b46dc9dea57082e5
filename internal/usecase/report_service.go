package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"

	"github.com/mlasky/diamondsync/internal/domain/dailystat"
	"github.com/mlasky/diamondsync/internal/domain/season"
	"github.com/mlasky/diamondsync/internal/domain/standing"
	"github.com/mlasky/diamondsync/internal/domain/team"
)

// ReportService renders a season summary as JSON. Head-to-head records
// come from the persisted per-date matchup results, never from any
// statistical reconstruction: a day is a win for whichever side scored
// more, ties counted separately.
type ReportService struct {
	seasonRepo   season.Repository
	teamRepo     team.Repository
	standingRepo standing.Repository
	dailyRepo    dailystat.Repository
}

func NewReportService(
	seasonRepo season.Repository,
	teamRepo team.Repository,
	standingRepo standing.Repository,
	dailyRepo dailystat.Repository,
) *ReportService {
	return &ReportService{
		seasonRepo:   seasonRepo,
		teamRepo:     teamRepo,
		standingRepo: standingRepo,
		dailyRepo:    dailyRepo,
	}
}

type SeasonReport struct {
	Year        string                `json:"year"`
	DisplayName string                `json:"displayName,omitempty"`
	Standings   []ReportStandingLine  `json:"standings"`
	HeadToHead  []ReportHeadToHead    `json:"headToHead"`
	DailyTotals []ReportTeamDayTotals `json:"dailyTotals,omitempty"`
}

type ReportStandingLine struct {
	Rank          int     `json:"rank"`
	TeamName      string  `json:"teamName"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Ties          int     `json:"ties"`
	WinPercentage float64 `json:"winPercentage"`
	PointsFor     float64 `json:"pointsFor"`
	PointsAgainst float64 `json:"pointsAgainst"`
	Streak        string  `json:"streak,omitempty"`
}

type ReportHeadToHead struct {
	TeamName     string `json:"teamName"`
	OpponentName string `json:"opponentName"`
	DaysWon      int    `json:"daysWon"`
	DaysLost     int    `json:"daysLost"`
	DaysTied     int    `json:"daysTied"`
}

type ReportTeamDayTotals struct {
	StatDate       string  `json:"statDate"`
	TeamName       string  `json:"teamName"`
	HittingPoints  float64 `json:"hittingPoints"`
	PitchingPoints float64 `json:"pitchingPoints"`
	TotalPoints    float64 `json:"totalPoints"`
}

// BuildSeasonReport assembles the report model without rendering it.
func (s *ReportService) BuildSeasonReport(ctx context.Context, seasonID int64) (SeasonReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReportService.BuildSeasonReport")
	defer span.End()

	if seasonID <= 0 {
		return SeasonReport{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	seasonRow, found, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return SeasonReport{}, fmt.Errorf("get season: %w", err)
	}
	if !found {
		return SeasonReport{}, fmt.Errorf("%w: season=%d", ErrNotFound, seasonID)
	}

	teams, err := s.teamRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return SeasonReport{}, fmt.Errorf("list teams: %w", err)
	}
	teamNames := make(map[int64]string, len(teams))
	for _, t := range teams {
		teamNames[t.ID] = t.Name
	}

	standings, err := s.standingRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return SeasonReport{}, fmt.Errorf("list standings: %w", err)
	}

	matchupDays, err := s.dailyRepo.ListMatchupDaysBySeason(ctx, seasonID)
	if err != nil {
		return SeasonReport{}, fmt.Errorf("list matchup days: %w", err)
	}

	report := SeasonReport{
		Year:        seasonRow.Year,
		DisplayName: seasonRow.DisplayName,
		Standings:   make([]ReportStandingLine, 0, len(standings)),
		HeadToHead:  tallyHeadToHead(matchupDays, teamNames),
	}
	for _, item := range standings {
		report.Standings = append(report.Standings, ReportStandingLine{
			Rank:          item.Rank,
			TeamName:      teamNames[item.TeamID],
			Wins:          item.Wins,
			Losses:        item.Losses,
			Ties:          item.Ties,
			WinPercentage: item.WinPercentage,
			PointsFor:     item.PointsFor,
			PointsAgainst: item.PointsAgainst,
			Streak:        item.Streak,
		})
	}

	return report, nil
}

// RenderSeasonReport builds the report and renders it to JSON through a
// pooled buffer. The returned slice is a copy and safe to retain.
func (s *ReportService) RenderSeasonReport(ctx context.Context, seasonID int64) ([]byte, error) {
	report, err := s.BuildSeasonReport(ctx, seasonID)
	if err != nil {
		return nil, err
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	enc := sonic.ConfigDefault.NewEncoder(buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return nil, fmt.Errorf("encode season report: %w", err)
	}

	out := make([]byte, buf.Len())
	copy(out, buf.B)
	return out, nil
}

type headToHeadKey struct {
	teamID     int64
	opponentID int64
}

func tallyHeadToHead(matchupDays []dailystat.MatchupDay, teamNames map[int64]string) []ReportHeadToHead {
	type record struct {
		won, lost, tied int
	}
	records := make(map[headToHeadKey]*record)

	bump := func(teamID, opponentID int64, ownPoints, oppPoints float64) {
		key := headToHeadKey{teamID: teamID, opponentID: opponentID}
		rec := records[key]
		if rec == nil {
			rec = &record{}
			records[key] = rec
		}
		switch {
		case ownPoints > oppPoints:
			rec.won++
		case ownPoints < oppPoints:
			rec.lost++
		default:
			rec.tied++
		}
	}

	for _, day := range matchupDays {
		bump(day.AwayTeamID, day.HomeTeamID, day.AwayPoints, day.HomePoints)
		bump(day.HomeTeamID, day.AwayTeamID, day.HomePoints, day.AwayPoints)
	}

	out := make([]ReportHeadToHead, 0, len(records))
	for key, rec := range records {
		out = append(out, ReportHeadToHead{
			TeamName:     teamNames[key.teamID],
			OpponentName: teamNames[key.opponentID],
			DaysWon:      rec.won,
			DaysLost:     rec.lost,
			DaysTied:     rec.tied,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TeamName != out[j].TeamName {
			return out[i].TeamName < out[j].TeamName
		}
		return out[i].OpponentName < out[j].OpponentName
	})
	return out
}
