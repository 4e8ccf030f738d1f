package ledger

import (
	"time"

	"github.com/loopital/ledger-backend/internal/model"
)

// RealizedReturns sums the payouts of a group that were actually processed
// and credited. Pending and failed payouts never count.
func RealizedReturns(g model.GroupedInvestment) float64 {
	var total float64
	for _, p := range g.Payouts {
		if p.Status == model.PayoutProcessed {
			total += p.Amount
		}
	}
	return total
}

// PercentReturn returns the unrealized gain of a group as a percentage of
// its contributed principal. A group with no principal returns 0, never NaN
// or an infinity.
func PercentReturn(g model.GroupedInvestment) float64 {
	if g.TotalAmount <= 0 {
		return 0
	}
	return (g.TotalCurrentValue - g.TotalAmount) / g.TotalAmount * 100
}

// Summarize computes the portfolio-wide position across all groups.
//
// TotalProfit = Σ currentValue − Σ invested + Σ realizedReturns. The
// additive combination is intentional: current value carries the unrealized
// mark while realized returns capture cash already distributed and removed
// from current value, so the two never overlap.
//
// All monetary results are rounded to two decimal places.
func Summarize(groups []model.GroupedInvestment) model.PortfolioSummary {
	var invested, current, realized float64
	for _, g := range groups {
		invested += g.TotalAmount
		current += g.TotalCurrentValue
		realized += RealizedReturns(g)
	}

	var percent float64
	if invested > 0 {
		percent = (current - invested) / invested * 100
	}

	return model.PortfolioSummary{
		TotalInvested:        Round(invested),
		TotalCurrentValue:    Round(current),
		TotalRealizedReturns: Round(realized),
		TotalProfit:          Round(current - invested + realized),
		PercentReturn:        Round(percent),
		ProjectCount:         len(groups),
	}
}

// NextUpcomingPayout scans all groups for pending payouts with a valid due
// date strictly after now and returns the one due earliest, or nil when none
// exist. Ties keep the first payout encountered, which makes the result
// deterministic for a given input ordering.
func NextUpcomingPayout(groups []model.GroupedInvestment, now time.Time) *model.UpcomingPayout {
	var next *model.UpcomingPayout
	for _, g := range groups {
		for _, p := range g.Payouts {
			if p.Status != model.PayoutPending || p.DueDate == nil || !p.DueDate.After(now) {
				continue
			}
			if next == nil || p.DueDate.Before(next.DueDate) {
				next = &model.UpcomingPayout{
					ProjectID: g.ProjectID,
					Amount:    p.Amount,
					DueDate:   *p.DueDate,
				}
			}
		}
	}
	return next
}

// UpcomingSchedule returns the future-looking payout list across all groups
// in encounter order: every pending payout with a valid future due date,
// plus a synthesized entry for groups that have no pending payout record at
// all. The synthesized entry projects principal plus the expected return at
// term end (lastInvestDate + durationMonths) and is flagged Projected so
// callers can distinguish it from authoritative schedule data.
//
// Exited groups (no remaining current value) never produce projections.
func UpcomingSchedule(groups []model.GroupedInvestment, now time.Time) []model.UpcomingPayout {
	schedule := []model.UpcomingPayout{}
	for _, g := range groups {
		pendingSeen := false
		for _, p := range g.Payouts {
			if p.Status != model.PayoutPending {
				continue
			}
			pendingSeen = true
			if p.DueDate == nil || !p.DueDate.After(now) {
				continue
			}
			schedule = append(schedule, model.UpcomingPayout{
				ProjectID: g.ProjectID,
				Amount:    p.Amount,
				DueDate:   *p.DueDate,
			})
		}

		if pendingSeen || g.TotalCurrentValue <= 0 {
			continue
		}
		if g.Project == nil || g.Project.DurationMonths <= 0 {
			continue
		}
		due := g.LastInvestDate.AddDate(0, g.Project.DurationMonths, 0)
		if !due.After(now) {
			continue
		}
		schedule = append(schedule, model.UpcomingPayout{
			ProjectID: g.ProjectID,
			Amount:    Round(g.TotalAmount * (1 + g.Project.ROI/100)),
			DueDate:   due,
			Projected: true,
		})
	}
	return schedule
}
