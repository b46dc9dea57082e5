package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mlasky/diamondsync/internal/domain/dailystat"
)

type DailyStatsRepository struct {
	mu          sync.RWMutex
	playerDays  []dailystat.PlayerDay
	teamDays    []dailystat.TeamDay
	matchupDays []dailystat.MatchupDay
	nextID      int64
}

func NewDailyStatsRepository() *DailyStatsRepository {
	return &DailyStatsRepository{nextID: 1}
}

func (r *DailyStatsRepository) UpsertPlayerDay(_ context.Context, item dailystat.PlayerDay) (dailystat.PlayerDay, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx := range r.playerDays {
		existing := r.playerDays[idx]
		if existing.StatDate == item.StatDate &&
			existing.ExternalPlayerID == item.ExternalPlayerID &&
			existing.FantasyTeamID == item.FantasyTeamID {
			item.ID = existing.ID
			r.playerDays[idx] = item
			return item, nil
		}
	}

	item.ID = r.nextID
	r.nextID++
	r.playerDays = append(r.playerDays, item)
	return item, nil
}

func (r *DailyStatsRepository) ListPlayerDays(_ context.Context, statDate string, fantasyTeamID int64) ([]dailystat.PlayerDay, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]dailystat.PlayerDay, 0)
	for _, item := range r.playerDays {
		if item.StatDate == statDate && item.FantasyTeamID == fantasyTeamID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExternalPlayerID < out[j].ExternalPlayerID })
	return out, nil
}

func (r *DailyStatsRepository) SumTeamDay(_ context.Context, statDate string, fantasyTeamID int64) (dailystat.TeamDay, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := dailystat.TeamDay{StatDate: statDate, FantasyTeamID: fantasyTeamID}
	found := false
	for _, item := range r.playerDays {
		if item.StatDate != statDate || item.FantasyTeamID != fantasyTeamID || !item.Active {
			continue
		}
		found = true
		out.SeasonID = item.SeasonID
		out.PeriodNumber = item.PeriodNumber
		if item.IsTeamPitching() {
			out.Pitching.Add(item.Pitching)
			out.PitchingPoints += item.FantasyPoints
		} else {
			out.Hitting.Add(item.Hitting)
			out.HittingPoints += item.FantasyPoints
		}
	}
	if !found {
		return dailystat.TeamDay{}, false, nil
	}
	out.TotalPoints = out.HittingPoints + out.PitchingPoints
	return out, true, nil
}

func (r *DailyStatsRepository) ListTeamIDsForDay(_ context.Context, statDate string, seasonID int64) ([]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[int64]bool)
	out := make([]int64, 0)
	for _, item := range r.playerDays {
		if item.StatDate == statDate && item.SeasonID == seasonID && !seen[item.FantasyTeamID] {
			seen[item.FantasyTeamID] = true
			out = append(out, item.FantasyTeamID)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (r *DailyStatsRepository) PeriodForDay(_ context.Context, statDate string, seasonID int64) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.playerDays {
		if item.StatDate == statDate && item.SeasonID == seasonID {
			return item.PeriodNumber, true, nil
		}
	}
	return "", false, nil
}

func (r *DailyStatsRepository) UpsertTeamDay(_ context.Context, item dailystat.TeamDay) (dailystat.TeamDay, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx := range r.teamDays {
		existing := r.teamDays[idx]
		if existing.StatDate == item.StatDate && existing.FantasyTeamID == item.FantasyTeamID {
			item.ID = existing.ID
			r.teamDays[idx] = item
			return item, nil
		}
	}

	item.ID = r.nextID
	r.nextID++
	r.teamDays = append(r.teamDays, item)
	return item, nil
}

func (r *DailyStatsRepository) GetTeamDay(_ context.Context, statDate string, fantasyTeamID int64) (dailystat.TeamDay, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.teamDays {
		if item.StatDate == statDate && item.FantasyTeamID == fantasyTeamID {
			return item, true, nil
		}
	}
	return dailystat.TeamDay{}, false, nil
}

func (r *DailyStatsRepository) ListTeamDays(_ context.Context, statDate string, seasonID int64) ([]dailystat.TeamDay, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]dailystat.TeamDay, 0)
	for _, item := range r.teamDays {
		if item.StatDate == statDate && item.SeasonID == seasonID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TotalPoints > out[j].TotalPoints })
	return out, nil
}

func (r *DailyStatsRepository) UpsertMatchupDay(_ context.Context, item dailystat.MatchupDay) (dailystat.MatchupDay, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx := range r.matchupDays {
		existing := r.matchupDays[idx]
		if existing.StatDate == item.StatDate &&
			existing.AwayTeamID == item.AwayTeamID &&
			existing.HomeTeamID == item.HomeTeamID {
			item.ID = existing.ID
			if item.ExternalMatchupID == "" {
				item.ExternalMatchupID = existing.ExternalMatchupID
			}
			r.matchupDays[idx] = item
			return item, nil
		}
	}

	item.ID = r.nextID
	r.nextID++
	r.matchupDays = append(r.matchupDays, item)
	return item, nil
}

func (r *DailyStatsRepository) ListMatchupDaysBySeason(_ context.Context, seasonID int64) ([]dailystat.MatchupDay, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]dailystat.MatchupDay, 0)
	for _, item := range r.matchupDays {
		if item.SeasonID == seasonID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StatDate != out[j].StatDate {
			return out[i].StatDate < out[j].StatDate
		}
		return out[i].AwayTeamID < out[j].AwayTeamID
	})
	return out, nil
}

func (r *DailyStatsRepository) DeleteDay(_ context.Context, statDate string, seasonID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64

	playerDays := r.playerDays[:0]
	for _, item := range r.playerDays {
		if item.StatDate == statDate && item.SeasonID == seasonID {
			deleted++
			continue
		}
		playerDays = append(playerDays, item)
	}
	r.playerDays = playerDays

	teamDays := r.teamDays[:0]
	for _, item := range r.teamDays {
		if item.StatDate == statDate && item.SeasonID == seasonID {
			deleted++
			continue
		}
		teamDays = append(teamDays, item)
	}
	r.teamDays = teamDays

	matchupDays := r.matchupDays[:0]
	for _, item := range r.matchupDays {
		if item.StatDate == statDate && item.SeasonID == seasonID {
			deleted++
			continue
		}
		matchupDays = append(matchupDays, item)
	}
	r.matchupDays = matchupDays

	return deleted, nil
}
