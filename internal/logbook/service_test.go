package logbook

import (
	"context"
	"testing"
	"time"

	"github.com/glovebox/glovebox/backend/go-services/internal/vehicle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, string) {
	t.Helper()
	vehicles := vehicle.NewService(vehicle.NewMemoryRepository())
	name, plate := "Corolla", "CAB-1"
	odo, next := int64(1000), int64(5000)
	v, err := vehicles.Add(context.Background(), "u1", vehicle.Input{Name: &name, Plate: &plate, Odo: &odo, NextService: &next})
	require.NoError(t, err)
	return NewService(NewMemoryRepository(), vehicles), v.ID
}

func TestAddLogValidation(t *testing.T) {
	svc, vid := newTestService(t)
	ctx := context.Background()
	cases := []Entry{
		{Type: "wash", Cost: 10, Odo: 100},
		{Type: KindFuel, Cost: 0, Odo: 100, Liters: 5},
		{Type: KindFuel, Cost: 10, Odo: 0, Liters: 5},
		{Type: KindFuel, Cost: 10, Odo: 100},
		{Type: KindService, Cost: 10, Odo: 100},
	}
	for i, e := range cases {
		_, err := svc.AddLog(ctx, "u1", vid, e)
		assert.ErrorIs(t, err, ErrInvalidInput, "case %d", i)
	}

	_, err := svc.AddLog(ctx, "u1", "", Entry{Type: KindFuel, Cost: 10, Odo: 100, Liters: 5})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.AddLog(ctx, "u2", vid, Entry{Type: KindFuel, Cost: 10, Odo: 100, Liters: 5})
	assert.ErrorIs(t, err, vehicle.ErrNotFound)
}

func TestAddLogDropsForeignFields(t *testing.T) {
	svc, vid := newTestService(t)
	e, err := svc.AddLog(context.Background(), "u1", vid, Entry{Type: "Service", Cost: 80, Odo: 1200, Liters: 4, ServiceCategory: " Oil change "})
	require.NoError(t, err)
	assert.Equal(t, KindService, e.Type)
	assert.Zero(t, e.Liters)
	assert.Equal(t, "Oil change", e.ServiceCategory)
	assert.Equal(t, "u1", e.UserID)
}

func TestListNewestFirstAndTotals(t *testing.T) {
	svc, vid := newTestService(t)
	ctx := context.Background()
	entries := []Entry{
		{Type: KindFuel, Cost: 50, Odo: 1000, Liters: 20},
		{Type: KindService, Cost: 120, Odo: 1200, ServiceCategory: "Tyres"},
		{Type: KindFuel, Cost: 40, Odo: 1300, Liters: 15},
		{Type: KindFuel, Cost: 30, Odo: 1450, Liters: 10},
	}
	for _, e := range entries {
		_, err := svc.AddLog(ctx, "u1", vid, e)
		require.NoError(t, err)
		time.Sleep(time.Millisecond)
	}

	list, err := svc.ListLogs(ctx, "u1", vid)
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Equal(t, int64(1450), list[0].Odo)
	assert.Equal(t, int64(1000), list[3].Odo)

	total, err := svc.TotalSpent(ctx, "u1", vid)
	require.NoError(t, err)
	assert.InDelta(t, 240, total, 1e-9)

	sum, err := svc.Summary(ctx, "u1", vid)
	require.NoError(t, err)
	assert.Equal(t, 4, sum.Entries)
	assert.InDelta(t, 120, sum.FuelSpent, 1e-9)
	assert.InDelta(t, 120, sum.ServiceSpent, 1e-9)
	assert.InDelta(t, 45, sum.FuelLiters, 1e-9)
	// 450 km over the 25 L bought after the first fill.
	assert.InDelta(t, 18, sum.KmPerLiter, 1e-9)

	empty, err := svc.Summary(ctx, "u2", vid)
	require.NoError(t, err)
	assert.Equal(t, Summary{}, empty)
}

func TestSummarizeSingleFillHasNoEconomy(t *testing.T) {
	sum := Summarize([]*Entry{{Type: KindFuel, Cost: 10, Odo: 100, Liters: 5}})
	assert.Zero(t, sum.KmPerLiter)
	assert.InDelta(t, 10, sum.TotalSpent, 1e-9)
}

func TestDeleteLog(t *testing.T) {
	svc, vid := newTestService(t)
	ctx := context.Background()
	e, err := svc.AddLog(ctx, "u1", vid, Entry{Type: KindFuel, Cost: 10, Odo: 100, Liters: 5})
	require.NoError(t, err)
	assert.ErrorIs(t, svc.DeleteLog(ctx, "u2", e.ID), ErrNotFound)
	require.NoError(t, svc.DeleteLog(ctx, "u1", e.ID))
	list, err := svc.ListLogs(ctx, "u1", vid)
	require.NoError(t, err)
	assert.Empty(t, list)
}

// stubTotals reports a fixed total so Summary's use of the store aggregate is visible.
type stubTotals struct {
	*MemoryRepository
	total float64
}

func (s stubTotals) TotalSpent(context.Context, string, string) (float64, error) {
	return s.total, nil
}

func TestSummaryTotalComesFromStore(t *testing.T) {
	repo := stubTotals{MemoryRepository: NewMemoryRepository(), total: 999}
	svc := NewService(repo, nil)
	_, err := svc.AddLog(context.Background(), "u1", "v1", Entry{Type: KindFuel, Cost: 10, Odo: 100, Liters: 5})
	require.NoError(t, err)

	sum, err := svc.Summary(context.Background(), "u1", "v1")
	require.NoError(t, err)
	assert.InDelta(t, 999, sum.TotalSpent, 1e-9)
	assert.InDelta(t, 10, sum.FuelSpent, 1e-9)
}

func TestAddLogIgnoresClientCreatedAt(t *testing.T) {
	svc, vid := newTestService(t)
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	ctx := context.Background()

	first, err := svc.AddLog(ctx, "u1", vid, Entry{Type: KindFuel, Cost: 10, Odo: 1100, Liters: 5})
	require.NoError(t, err)
	now = now.Add(time.Hour)
	backdated := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	second, err := svc.AddLog(ctx, "u1", vid, Entry{Type: KindFuel, Cost: 20, Odo: 1200, Liters: 8, CreatedAt: backdated})
	require.NoError(t, err)
	assert.Equal(t, now, second.CreatedAt)

	list, err := svc.ListLogs(ctx, "u1", vid)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}
