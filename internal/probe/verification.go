package probe

import (
	"math"
	"sort"

	"github.com/okian/squadform/internal/domain/model"
)

const epsilon = 1e-9

// verifyLeaderboard checks that entries are sorted by season average, that
// ranks are dense and that the head matches the best non-staff player.
func verifyLeaderboard(r *Report, players []model.PlayerRecord, board []model.RankedPlayer, topN int) {
	var eligible []model.PlayerRecord
	for _, p := range players {
		if !p.IsStaff {
			eligible = append(eligible, p)
		}
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].SeasonAverage > eligible[j].SeasonAverage
	})

	want := topN
	if len(eligible) < want {
		want = len(eligible)
	}
	if len(board) != want {
		r.failf("leaderboard has %d entries, want %d", len(board), want)
	}
	if len(board) == 0 || len(eligible) == 0 {
		return
	}

	if board[0].Player.ID != eligible[0].ID {
		r.failf("leaderboard head %s does not match best player %s", board[0].Player.ID, eligible[0].ID)
	}
	if board[0].Rank != 1 {
		r.failf("leaderboard head has rank %d", board[0].Rank)
	}
	for i, e := range board {
		if e.Player.IsStaff {
			r.failf("leaderboard entry %d is staff member %s", i, e.Player.ID)
		}
	}
	for i := 1; i < len(board); i++ {
		prev, cur := board[i-1], board[i]
		if cur.Player.SeasonAverage > prev.Player.SeasonAverage {
			r.failf("leaderboard not sorted: entry %d beats entry %d", i, i-1)
		}
		switch {
		case cur.Player.SeasonAverage == prev.Player.SeasonAverage && cur.Rank != prev.Rank:
			r.failf("tied entries %d and %d have ranks %d and %d", i-1, i, prev.Rank, cur.Rank)
		case cur.Player.SeasonAverage < prev.Player.SeasonAverage && cur.Rank != prev.Rank+1:
			r.failf("entry %d has rank %d after rank %d", i, cur.Rank, prev.Rank)
		}
	}
}

// verifyTeam recomputes the quarterly averages from the non-staff players.
func verifyTeam(r *Report, players []model.PlayerRecord, team model.TeamOverview) {
	var squad int
	for _, p := range players {
		if !p.IsStaff {
			squad++
		}
	}
	if squad > 0 {
		for _, q := range model.Periods {
			var sum float64
			for _, p := range players {
				if !p.IsStaff {
					sum += p.Overall.Value(q)
				}
			}
			want := model.RoundHalfUp(sum / float64(squad))
			if got := team.Aggregate.QuarterlyAverages.Value(q); math.Abs(got-want) > epsilon {
				r.failf("team average for %s is %.0f, want %.0f", q, got, want)
			}
		}
	}

	if team.Summary.SquadSize != squad {
		r.failf("team squad size is %d, want %d", team.Summary.SquadSize, squad)
	}
	if team.Summary.StaffCount != len(players)-squad {
		r.failf("team staff count is %d, want %d", team.Summary.StaffCount, len(players)-squad)
	}
}

// verifyPlayer compares a detail response with its list entry.
func verifyPlayer(r *Report, listed model.PlayerRecord, detail playerBody) {
	got := detail.Player
	if got.ID != listed.ID {
		r.failf("player %s detail returned id %s", listed.ID, got.ID)
		return
	}
	if math.Abs(got.SeasonAverage-listed.SeasonAverage) > epsilon {
		r.failf("player %s season average %.1f differs from list %.1f", got.ID, got.SeasonAverage, listed.SeasonAverage)
	}
	if !got.IsStaff && len(detail.PhysicalValues) != len(got.Metrics) {
		r.failf("player %s has %d physical values for %d metrics", got.ID, len(detail.PhysicalValues), len(got.Metrics))
	}
}
