package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/okian/squadform/internal/dataset"
	"github.com/okian/squadform/internal/domain/metric"
	"github.com/okian/squadform/internal/domain/model"
	"github.com/okian/squadform/internal/domain/ranking"
	"github.com/okian/squadform/internal/domain/roster"
	"github.com/okian/squadform/internal/domain/team"
)

func squad(t *testing.T) []model.PlayerRecord {
	t.Helper()
	records, err := roster.Synthesize(dataset.Squad(), metric.Default())
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	return records
}

func TestSnapshotStore_BeforePublish(t *testing.T) {
	ctx := context.Background()
	store := NewSnapshotStore()

	if _, err := store.Current(); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("expected ErrNoSnapshot, got %v", err)
	}
	if _, err := store.Player(ctx, "player-0"); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("expected ErrNoSnapshot, got %v", err)
	}
	if _, err := store.TopN(ctx, 3); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("expected ErrNoSnapshot, got %v", err)
	}
	if count := store.Count(ctx); count != 0 {
		t.Errorf("expected count 0, got %d", count)
	}
}

func TestSnapshotStore_BasicOperations(t *testing.T) {
	ctx := context.Background()
	store := NewSnapshotStore()
	if err := store.Rebuild(ctx, squad(t), metric.Default()); err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	if count := store.Count(ctx); count != 13 {
		t.Errorf("expected count 13, got %d", count)
	}

	p, err := store.Player(ctx, "player-11")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.FirstName != "Robin" || p.Position != model.Goalkeeper {
		t.Errorf("unexpected player %+v", p)
	}

	if _, err := store.Player(ctx, "player-99"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	top, err := store.TopN(ctx, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"player-5", "player-2", "player-0"}
	if len(top) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(top))
	}
	for i, id := range want {
		if top[i].Player.ID != id || top[i].Rank != i+1 {
			t.Errorf("entry %d: expected %s rank %d, got %s rank %d", i, id, i+1, top[i].Player.ID, top[i].Rank)
		}
	}

	all, err := store.TopN(ctx, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 12 {
		t.Errorf("expected 12 entries, got %d", len(all))
	}
	for _, e := range all {
		if e.Player.IsStaff {
			t.Errorf("staff member %s ranked", e.Player.ID)
		}
	}

	if _, err := store.TopN(ctx, 0); !errors.Is(err, ranking.ErrInvalidLimit) {
		t.Errorf("expected ErrInvalidLimit, got %v", err)
	}
}

func TestSnapshotStore_TopNReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewSnapshotStore()
	if err := store.Rebuild(ctx, squad(t), metric.Default()); err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	top, _ := store.TopN(ctx, 2)
	top[0].Rank = 99

	again, _ := store.TopN(ctx, 2)
	if again[0].Rank != 1 {
		t.Errorf("snapshot ranking was modified through TopN result")
	}
}

func TestNewSnapshot_DerivedViews(t *testing.T) {
	reg := metric.Default()
	snap, err := NewSnapshot(squad(t), reg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := snap.Aggregate.QuarterlyAverages.Value(model.Q3); got != 94 {
		t.Errorf("expected Q3 team average 94, got %v", got)
	}
	if snap.Summary.TopPerformer != "player-5" || snap.Summary.SquadSize != 12 || snap.Summary.StaffCount != 1 {
		t.Errorf("unexpected summary %+v", snap.Summary)
	}
	if len(snap.Leaders) != reg.Len() {
		t.Fatalf("expected %d leaders, got %d", reg.Len(), len(snap.Leaders))
	}
	l, ok := snap.Leader("speed")
	if !ok || l.Player.ID != "player-2" || l.Value != 121 {
		t.Errorf("unexpected speed leader %+v", l)
	}
	if _, ok := snap.Leader("agility"); ok {
		t.Errorf("expected no leader for unknown metric")
	}
}

func TestNewSnapshot_StaffOnly(t *testing.T) {
	records, err := roster.Synthesize([]model.RawPlayerInput{
		{FirstName: "Marko", LastName: "TRAINER", IsStaff: true, Quarters: []float64{100, 100, 100, 100}},
	}, metric.Default())
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}

	snap, err := NewSnapshot(records, metric.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap.Leaders) != 0 {
		t.Errorf("expected no leaders, got %d", len(snap.Leaders))
	}
	if snap.Summary.StaffCount != 1 || snap.Summary.SquadSize != 0 {
		t.Errorf("unexpected summary %+v", snap.Summary)
	}
	if len(snap.Ranking) != 0 {
		t.Errorf("expected empty ranking, got %d entries", len(snap.Ranking))
	}
	if got := snap.Aggregate.QuarterlyAverages.Value(model.Q1); got != 0 {
		t.Errorf("expected zero team average, got %v", got)
	}
}

func TestSnapshotStore_RebuildEmptyKeepsPrevious(t *testing.T) {
	ctx := context.Background()
	store := NewSnapshotStore()
	if err := store.Rebuild(ctx, squad(t), metric.Default()); err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	err := store.Rebuild(ctx, nil, metric.Default())
	if !errors.Is(err, team.ErrEmptyRoster) {
		t.Errorf("expected ErrEmptyRoster, got %v", err)
	}
	if count := store.Count(ctx); count != 13 {
		t.Errorf("expected previous snapshot to remain, got count %d", count)
	}
}

func TestSnapshotStore_ConcurrentReads(t *testing.T) {
	ctx := context.Background()
	store := NewSnapshotStore()
	records := squad(t)
	if err := store.Rebuild(ctx, records, metric.Default()); err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if _, err := store.TopN(ctx, 5); err != nil {
					t.Errorf("TopN: %v", err)
					return
				}
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				if err := store.Rebuild(ctx, records, metric.Default()); err != nil {
					t.Errorf("Rebuild: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	if count := store.Count(ctx); count != 13 {
		t.Errorf("expected count 13, got %d", count)
	}
}
