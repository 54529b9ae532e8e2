// Package maintenance implements the replacement-interval status engine.
// All functions are pure over the supplied collections.
package maintenance

import "github.com/fretecalc/backend/internal/models"

// DueSoonThresholdKm is the fixed window below which an item with a
// scheduled next replacement is flagged as due soon.
const DueSoonThresholdKm = 1000

// latestFor picks the most recent replacement of an item, by highest
// odometer reading. When two events share the same odometer the one
// appearing first in the slice wins; event stores return history
// newest-first, so that is the most recently registered event.
func latestFor(itemName string, events []models.ReplacementEvent) *models.ReplacementEvent {
	var latest *models.ReplacementEvent
	for i := range events {
		e := &events[i]
		if e.ItemName != itemName {
			continue
		}
		if latest == nil || e.OdometerKm > latest.OdometerKm {
			latest = e
		}
	}
	return latest
}

// Classify derives the status of one item from its replacement history and
// the current odometer. An item never replaced is immediately overdue when
// it has an interval; items with interval <= 0 are unscheduled regardless.
func Classify(itemName string, intervalKm float64, events []models.ReplacementEvent, currentOdometer float64) models.ItemStatus {
	last := latestFor(itemName, events)

	if last == nil {
		if intervalKm <= 0 {
			return models.ItemStatus{ItemName: itemName, Status: models.StatusUnscheduled}
		}
		zero := 0.0
		return models.ItemStatus{ItemName: itemName, Status: models.StatusOverdue, RemainingKm: &zero}
	}

	if intervalKm <= 0 || last.NextDueKm == nil {
		return models.ItemStatus{ItemName: itemName, Status: models.StatusUnscheduled, LastReplacement: last}
	}

	nextDue := *last.NextDueKm
	remaining := nextDue - currentOdometer

	var status models.ItemStatusCode
	switch {
	case currentOdometer >= nextDue:
		status = models.StatusOverdue
	case remaining <= DueSoonThresholdKm:
		status = models.StatusDueSoon
	default:
		status = models.StatusOK
	}

	return models.ItemStatus{
		ItemName:        itemName,
		Status:          status,
		LastReplacement: last,
		NextDueKm:       &nextDue,
		RemainingKm:     &remaining,
	}
}

// ClassifyAll runs Classify over the configured item set plus any ad-hoc
// item names found in the history that the set does not cover. Ad-hoc items
// have no configured interval and always land in the unscheduled bucket.
func ClassifyAll(items []models.MaintenanceItem, events []models.ReplacementEvent, currentOdometer float64) models.StatusReport {
	all := make([]models.ItemStatus, 0, len(items))
	known := make(map[string]bool, len(items))
	for _, item := range items {
		known[item.Name] = true
		all = append(all, Classify(item.Name, item.IntervalKm, events, currentOdometer))
	}

	seen := make(map[string]bool)
	for _, e := range events {
		if known[e.ItemName] || seen[e.ItemName] {
			continue
		}
		seen[e.ItemName] = true
		all = append(all, Classify(e.ItemName, 0, events, currentOdometer))
	}

	report := models.StatusReport{All: all}
	for _, s := range all {
		switch s.Status {
		case models.StatusOverdue:
			report.Overdue = append(report.Overdue, s)
		case models.StatusDueSoon:
			report.DueSoon = append(report.DueSoon, s)
		case models.StatusOK:
			report.OK = append(report.OK, s)
		case models.StatusUnscheduled:
			report.Unscheduled = append(report.Unscheduled, s)
		}
	}
	return report
}
