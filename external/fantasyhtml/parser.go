// Package fantasyhtml parses saved fantasy-platform HTML pages into the
// raw records the reconcile pipeline ingests. Pages are scraped while a
// league is still reachable and archived to disk; everything here works
// from those archives, never from the live site.
package fantasyhtml

import (
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mlasky/diamondsync/internal/domain/dailystat"
	"github.com/mlasky/diamondsync/internal/domain/matchup"
	"github.com/mlasky/diamondsync/internal/domain/roster"
	"github.com/mlasky/diamondsync/internal/usecase"
)

var periodNumberRe = regexp.MustCompile(`(\d+)`)

// ParseTeams reads a league page and returns its teams. Team identity
// comes from the tid query parameter on each team link, never from the
// display name.
func ParseTeams(r io.Reader) ([]usecase.RawTeamRow, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse teams page: %w", err)
	}

	rows := make([]usecase.RawTeamRow, 0, 12)
	doc.Find("table.league-teams td.team").Each(func(_ int, cell *goquery.Selection) {
		link := cell.Find("a").First()
		rows = append(rows, usecase.RawTeamRow{
			ExternalTeamID: teamIDFromHref(link.AttrOr("href", "")),
			Name:           strings.TrimSpace(link.Text()),
			IconURL:        strings.TrimSpace(cell.Find("img").First().AttrOr("src", "")),
		})
	})
	return rows, nil
}

// ParseSchedule reads a season schedule page. The page interleaves
// period header rows with the matchup rows that belong to them.
func ParseSchedule(r io.Reader) ([]usecase.RawMatchupRow, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse schedule page: %w", err)
	}

	var (
		rows         []usecase.RawMatchupRow
		periodNumber string
		periodType   string
		dateRange    string
	)
	doc.Find("table.schedule tr").Each(func(_ int, row *goquery.Selection) {
		if row.HasClass("period-header") {
			periodNumber = periodNumberFromText(row.Find("td.period").Text())
			dateRange = strings.TrimSpace(row.Find("td.dates").Text())
			switch {
			case row.HasClass("championship"):
				periodType = matchup.PeriodTypeChampionship
			case row.HasClass("playoff"):
				periodType = matchup.PeriodTypePlayoff
			default:
				periodType = matchup.PeriodTypeRegularSeason
			}
			return
		}
		if !row.HasClass("matchup") {
			return
		}

		rows = append(rows, usecase.RawMatchupRow{
			PeriodNumber:       periodNumber,
			PeriodType:         periodType,
			DateRange:          dateRange,
			AwayExternalTeamID: teamIDFromHref(row.Find("td.away a").First().AttrOr("href", "")),
			HomeExternalTeamID: teamIDFromHref(row.Find("td.home a").First().AttrOr("href", "")),
			ExternalMatchupID:  strings.TrimSpace(row.AttrOr("id", "")),
		})
	})
	return rows, nil
}

// ParseStandings reads a league-table page.
func ParseStandings(r io.Reader) ([]usecase.RawStandingRow, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse standings page: %w", err)
	}

	rows := make([]usecase.RawStandingRow, 0, 12)
	doc.Find("table.standings tbody tr").Each(func(_ int, row *goquery.Selection) {
		rows = append(rows, usecase.RawStandingRow{
			ExternalTeamID: teamIDFromHref(row.Find("td.team a").First().AttrOr("href", "")),
			Rank:           intCell(row.Find("td.rank").Text()),
			Wins:           intCell(row.Find("td.wins").Text()),
			Losses:         intCell(row.Find("td.losses").Text()),
			Ties:           intCell(row.Find("td.ties").Text()),
			WinPercentage:  floatCell(row.Find("td.pct").Text()),
			DivisionRecord: strings.TrimSpace(row.Find("td.division").Text()),
			GamesBack:      strings.TrimSpace(row.Find("td.gb").Text()),
			WaiverPosition: intCell(row.Find("td.waiver").Text()),
			PointsFor:      floatCell(row.Find("td.pf").Text()),
			PointsAgainst:  floatCell(row.Find("td.pa").Text()),
			Streak:         strings.TrimSpace(row.Find("td.streak").Text()),
		})
	})
	return rows, nil
}

// Column order of a season stats table after the team cell: GP, total
// points, hitting points, pitching points, then the hitting block
// (AB H R 2B 3B HR RBI BB SB CS AVG) and the pitching block
// (W IP ER HA BBA K ERA). Older seasons expose only the first five
// columns.
const (
	seasonStatSummaryCells = 5
	seasonStatFullCells    = 23
)

// ParseSeasonStats reads a season-long team stats page.
func ParseSeasonStats(r io.Reader) ([]usecase.RawSeasonStatRow, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse season stats page: %w", err)
	}

	rows := make([]usecase.RawSeasonStatRow, 0, 12)
	doc.Find("table.season-stats tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < seasonStatSummaryCells {
			return
		}
		text := func(i int) string { return strings.TrimSpace(cells.Eq(i).Text()) }

		raw := usecase.RawSeasonStatRow{
			ExternalTeamID: teamIDFromHref(cells.Eq(0).Find("a").First().AttrOr("href", "")),
			GamesPlayed:    intCell(text(1)),
			FantasyPoints:  floatCell(text(2)),
			HittingPoints:  floatCell(text(3)),
			PitchingPoints: floatCell(text(4)),
		}
		if cells.Length() >= seasonStatFullCells {
			raw.Hitting = &usecase.RawHittingBlock{
				AtBats:         intCell(text(5)),
				Hits:           intCell(text(6)),
				Runs:           intCell(text(7)),
				Doubles:        intCell(text(8)),
				Triples:        intCell(text(9)),
				HomeRuns:       intCell(text(10)),
				RBI:            intCell(text(11)),
				Walks:          intCell(text(12)),
				StolenBases:    intCell(text(13)),
				CaughtStealing: intCell(text(14)),
				BattingAverage: floatCell(text(15)),
			}
			if singles := raw.Hitting.Hits - raw.Hitting.Doubles - raw.Hitting.Triples - raw.Hitting.HomeRuns; singles > 0 {
				raw.Hitting.Singles = singles
			}
			raw.Pitching = &usecase.RawPitchingBlock{
				Wins:               intCell(text(16)),
				InningsPitchedOuts: inningsToOuts(text(17)),
				EarnedRuns:         intCell(text(18)),
				HitsAllowed:        intCell(text(19)),
				WalksAllowed:       intCell(text(20)),
				Strikeouts:         intCell(text(21)),
				ERA:                floatCell(text(22)),
			}
		}
		rows = append(rows, raw)
	})
	return rows, nil
}

// ParseRoster reads one team's roster page for a period. The repeated
// positions a roster carries (two catchers, five outfielders) get a
// stable slot index assigned by document order per position code.
func ParseRoster(r io.Reader) ([]usecase.RawRosterRow, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse roster page: %w", err)
	}

	table := doc.Find("table.roster").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("roster table not found")
	}

	caption := table.Find("caption").First()
	externalTeamID := teamIDFromHref(caption.Find("a").First().AttrOr("href", ""))
	periodNumber := periodNumberFromText(caption.Find("span.period").Text())

	slotByPosition := make(map[string]int)
	rows := make([]usecase.RawRosterRow, 0, 24)
	table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		positionCode := strings.TrimSpace(row.Find("td.pos").Text())
		if positionCode == "" {
			return
		}
		slot := slotByPosition[positionCode]
		slotByPosition[positionCode] = slot + 1

		playerCell := row.Find("td.player")
		playerLink := playerCell.Find("a").First()
		playerName := strings.TrimSpace(playerLink.Text())
		if playerName == "" {
			playerName = strings.TrimSpace(playerCell.Text())
		}

		raw := usecase.RawRosterRow{
			ExternalTeamID:   externalTeamID,
			PeriodNumber:     periodNumber,
			PositionCode:     positionCode,
			RosterSlot:       slot,
			IsActive:         row.HasClass("active"),
			PlayerName:       playerName,
			MLBTeamAbbrev:    strings.TrimSpace(row.Find("td.mlb").Text()),
			BatSide:          strings.TrimSpace(row.Find("td.bats").Text()),
			ExternalPlayerID: playerIDFromHref(playerLink.AttrOr("href", "")),
		}
		if positionCode == roster.PositionTeamPitching {
			if staffID, err := strconv.ParseInt(row.AttrOr("data-staff", ""), 10, 64); err == nil {
				raw.PitchingStaffID = &staffID
			}
		}
		rows = append(rows, raw)
	})
	return rows, nil
}

// Column order of a daily stats table, after the pos/player/mlb cells:
// AB H R 2B 3B HR RBI BB SB CS, then W IP ER HA BBA K, then points.
const dayStatCells = 20

// ParseDayStats reads one date's archived stats page. The page carries
// one section per fantasy team; players on the bench that day keep
// their stat line but are marked inactive.
func ParseDayStats(r io.Reader) ([]usecase.RawPlayerDayRow, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse day stats page: %w", err)
	}

	var rows []usecase.RawPlayerDayRow
	doc.Find("div.team-day").Each(func(_ int, section *goquery.Selection) {
		externalTeamID := teamIDFromHref(section.Find("h3 a").First().AttrOr("href", ""))
		periodNumber := periodNumberFromText(section.Find("h3 span.period").Text())

		section.Find("table.day-stats tbody tr").Each(func(_ int, row *goquery.Selection) {
			cells := row.Find("td")
			if cells.Length() < dayStatCells {
				return
			}
			text := func(i int) string { return strings.TrimSpace(cells.Eq(i).Text()) }

			hitting := dailystat.HittingLine{
				AtBats:         intCell(text(3)),
				Hits:           intCell(text(4)),
				Runs:           intCell(text(5)),
				Doubles:        intCell(text(6)),
				Triples:        intCell(text(7)),
				HomeRuns:       intCell(text(8)),
				RBI:            intCell(text(9)),
				Walks:          intCell(text(10)),
				StolenBases:    intCell(text(11)),
				CaughtStealing: intCell(text(12)),
			}
			if singles := hitting.Hits - hitting.Doubles - hitting.Triples - hitting.HomeRuns; singles > 0 {
				hitting.Singles = singles
			}

			pitching := dailystat.PitchingLine{
				Wins:               intCell(text(13)),
				InningsPitchedOuts: inningsToOuts(text(14)),
				EarnedRuns:         intCell(text(15)),
				HitsAllowed:        intCell(text(16)),
				WalksAllowed:       intCell(text(17)),
				Strikeouts:         intCell(text(18)),
			}
			pitching.HitsPlusWalks = pitching.HitsAllowed + pitching.WalksAllowed

			rows = append(rows, usecase.RawPlayerDayRow{
				ExternalPlayerID: playerIDFromHref(cells.Eq(1).Find("a").First().AttrOr("href", "")),
				ExternalTeamID:   externalTeamID,
				PeriodNumber:     periodNumber,
				PositionPlayed:   strings.TrimSpace(cells.Eq(0).Text()),
				MLBTeamAbbrev:    text(2),
				Active:           row.HasClass("active"),
				Hitting:          hitting,
				Pitching:         pitching,
				FantasyPoints:    floatCell(text(19)),
			})
		})
	})
	return rows, nil
}

func teamIDFromHref(href string) string {
	return queryParam(href, "tid")
}

func playerIDFromHref(href string) string {
	return queryParam(href, "pid")
}

func queryParam(href, key string) string {
	parsed, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(parsed.Query().Get(key))
}

func periodNumberFromText(text string) string {
	match := periodNumberRe.FindString(text)
	return match
}

// intCell and floatCell are lenient: the archived pages show empty
// cells and "-" for stats a slot did not accumulate.
func intCell(text string) int {
	text = strings.TrimSpace(text)
	if text == "" || text == "-" {
		return 0
	}
	value, err := strconv.Atoi(text)
	if err != nil {
		return 0
	}
	return value
}

func floatCell(text string) float64 {
	text = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), "+"))
	if text == "" || text == "-" {
		return 0
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0
	}
	return value
}

// inningsToOuts converts the platform's "6.1" innings notation, where
// the fraction digit counts outs, into a plain out total.
func inningsToOuts(text string) int {
	text = strings.TrimSpace(text)
	if text == "" || text == "-" {
		return 0
	}
	whole, frac, found := strings.Cut(text, ".")
	outs := intCell(whole) * 3
	if found {
		outs += intCell(frac)
	}
	return outs
}
