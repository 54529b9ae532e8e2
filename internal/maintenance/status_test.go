package maintenance

import (
	"testing"

	"github.com/fretecalc/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func event(item string, odometer, interval float64) models.ReplacementEvent {
	e := models.ReplacementEvent{
		ItemName:   item,
		OdometerKm: odometer,
		IntervalKm: interval,
	}
	e.ComputeNextDue()
	return e
}

func TestClassify_NeverReplacedWithInterval(t *testing.T) {
	// An item never serviced is treated as immediately due.
	status := Classify("Óleo motor", 4000, nil, 1)

	assert.Equal(t, models.StatusOverdue, status.Status)
	assert.Nil(t, status.NextDueKm)
	if assert.NotNil(t, status.RemainingKm) {
		assert.Equal(t, 0.0, *status.RemainingKm)
	}
}

func TestClassify_NeverReplacedFreeForm(t *testing.T) {
	status := Classify("Corrente", 0, nil, 99999)

	assert.Equal(t, models.StatusUnscheduled, status.Status)
	assert.Nil(t, status.NextDueKm)
	assert.Nil(t, status.RemainingKm)
}

func TestClassify_DueSoonWithinThreshold(t *testing.T) {
	// Last replaced at 10000 with a 4000 km interval; at 13500 there are
	// 500 km left, inside the 1000 km warning window.
	events := []models.ReplacementEvent{event("Óleo motor", 10000, 4000)}

	status := Classify("Óleo motor", 4000, events, 13500)

	assert.Equal(t, models.StatusDueSoon, status.Status)
	assert.Equal(t, 14000.0, *status.NextDueKm)
	assert.Equal(t, 500.0, *status.RemainingKm)
}

func TestClassify_OverduePastNextDue(t *testing.T) {
	events := []models.ReplacementEvent{event("Óleo motor", 10000, 4000)}

	status := Classify("Óleo motor", 4000, events, 14200)

	assert.Equal(t, models.StatusOverdue, status.Status)
	assert.Equal(t, -200.0, *status.RemainingKm)
}

func TestClassify_OKOutsideThreshold(t *testing.T) {
	events := []models.ReplacementEvent{event("Óleo motor", 10000, 4000)}

	status := Classify("Óleo motor", 4000, events, 10500)

	assert.Equal(t, models.StatusOK, status.Status)
	assert.Equal(t, 3500.0, *status.RemainingKm)
}

func TestClassify_ExactlyAtNextDueIsOverdue(t *testing.T) {
	events := []models.ReplacementEvent{event("Óleo motor", 10000, 4000)}

	status := Classify("Óleo motor", 4000, events, 14000)

	assert.Equal(t, models.StatusOverdue, status.Status)
}

func TestClassify_RoundTripAfterReplacement(t *testing.T) {
	// Right after servicing, the full interval remains.
	events := []models.ReplacementEvent{event("Óleo motor", 12000, 4000)}

	status := Classify("Óleo motor", 4000, events, 12000)

	assert.Equal(t, models.StatusOK, status.Status)
	assert.Equal(t, 4000.0, *status.RemainingKm)
}

func TestClassify_FreeFormIgnoresOdometer(t *testing.T) {
	events := []models.ReplacementEvent{event("Corrente", 5000, 0)}

	status := Classify("Corrente", 0, events, 500000)

	assert.Equal(t, models.StatusUnscheduled, status.Status)
	assert.NotNil(t, status.LastReplacement)
}

func TestClassify_PicksHighestOdometerEvent(t *testing.T) {
	events := []models.ReplacementEvent{
		event("Óleo motor", 16000, 4000),
		event("Óleo motor", 8000, 4000),
		event("Óleo motor", 12000, 4000),
	}

	status := Classify("Óleo motor", 4000, events, 16100)

	assert.Equal(t, 20000.0, *status.NextDueKm)
	assert.Equal(t, models.StatusOK, status.Status)
}

func TestClassify_SnapshottedIntervalWins(t *testing.T) {
	// The event was recorded with a 4000 km interval. Reconfiguring the
	// item to 6000 km must not move the already-recorded due point.
	events := []models.ReplacementEvent{event("Óleo motor", 10000, 4000)}

	status := Classify("Óleo motor", 6000, events, 13500)

	assert.Equal(t, 14000.0, *status.NextDueKm)
	assert.Equal(t, models.StatusDueSoon, status.Status)
}

func TestClassify_MonotonicInOdometer(t *testing.T) {
	events := []models.ReplacementEvent{event("Óleo motor", 10000, 4000)}

	severity := map[models.ItemStatusCode]int{
		models.StatusOK:      0,
		models.StatusDueSoon: 1,
		models.StatusOverdue: 2,
	}

	prev := -1
	for km := 10000.0; km <= 15000; km += 250 {
		status := Classify("Óleo motor", 4000, events, km)
		sev, ok := severity[status.Status]
		assert.True(t, ok, "unexpected status %s at km %.0f", status.Status, km)
		assert.GreaterOrEqual(t, sev, prev, "severity regressed at km %.0f", km)
		prev = sev
	}
}

func TestClassifyAll_IncludesAdHocItems(t *testing.T) {
	items := []models.MaintenanceItem{
		{Name: "Óleo motor", UnitCost: 115, IntervalKm: 4000},
		{Name: "Filtro ar", UnitCost: 80, IntervalKm: 15000},
	}
	events := []models.ReplacementEvent{
		event("Óleo motor", 10000, 4000),
		event("Manopla", 9000, 0), // not in the standard list
		event("Manopla", 6000, 0), // duplicate name, must not repeat
	}

	report := ClassifyAll(items, events, 10500)

	assert.Len(t, report.All, 3)

	names := map[string]models.ItemStatusCode{}
	for _, s := range report.All {
		names[s.ItemName] = s.Status
	}
	assert.Equal(t, models.StatusOK, names["Óleo motor"])
	assert.Equal(t, models.StatusOverdue, names["Filtro ar"]) // never serviced
	assert.Equal(t, models.StatusUnscheduled, names["Manopla"])
}

func TestClassifyAll_StandardEntryOverridesAdHoc(t *testing.T) {
	// An event for a standard item must be classified with the item's
	// configured interval, not re-added as a free item.
	items := []models.MaintenanceItem{{Name: "Óleo motor", UnitCost: 115, IntervalKm: 4000}}
	events := []models.ReplacementEvent{event("Óleo motor", 10000, 4000)}

	report := ClassifyAll(items, events, 14100)

	assert.Len(t, report.All, 1)
	assert.Equal(t, models.StatusOverdue, report.All[0].Status)
}

func TestClassifyAll_FilteredViewsPartitionAll(t *testing.T) {
	items := []models.MaintenanceItem{
		{Name: "Óleo motor", UnitCost: 115, IntervalKm: 4000},  // overdue at 14100
		{Name: "Filtro ar", UnitCost: 80, IntervalKm: 15000},   // never serviced -> overdue
		{Name: "Vela", UnitCost: 60, IntervalKm: 15000},        // ok
		{Name: "Corrente", UnitCost: 0, IntervalKm: 0},         // unscheduled
		{Name: "Pneu traseiro", UnitCost: 320, IntervalKm: 18000}, // due soon
	}
	events := []models.ReplacementEvent{
		event("Óleo motor", 10000, 4000),
		event("Vela", 13000, 15000),
		event("Pneu traseiro", 14000, 800),
	}

	report := ClassifyAll(items, events, 14100)

	total := len(report.Overdue) + len(report.DueSoon) + len(report.OK) + len(report.Unscheduled)
	assert.Equal(t, len(report.All), total)
	assert.Len(t, report.Overdue, 2)
	assert.Len(t, report.DueSoon, 1)
	assert.Len(t, report.OK, 1)
	assert.Len(t, report.Unscheduled, 1)
}

func TestClassifyAll_EmptyEverything(t *testing.T) {
	report := ClassifyAll(nil, nil, 0)

	assert.Empty(t, report.All)
	assert.Empty(t, report.Overdue)
}
