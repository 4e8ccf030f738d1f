package ledger

import (
	"github.com/loopital/ledger-backend/internal/model"
)

// GroupByProject collapses an investor's funding rounds into one group per
// project. The projects lookup table supplies project details for
// investments that carry only a bare reference; an embedded Project on the
// investment takes precedence over the lookup.
//
// Grouping accumulates per project:
//   - TotalAmount: sum of contributed principal
//   - TotalCurrentValue: sum of server-computed marks, falling back to the
//     principal when no mark was reported
//   - InvestmentsCount and the latest investment date
//   - Payouts concatenated across all rounds, except that pending payouts of
//     fully exited rounds (current value reported as zero) are suppressed
//
// Records without a resolvable project id are considered orphaned and
// silently excluded; incomplete upstream data is not an error. Output order
// is insertion order of first encounter, so no money is created or lost:
// the sum of group totals always equals the sum of input amounts for
// non-orphaned records.
func GroupByProject(investments []model.Investment, projects map[string]model.Project) []model.GroupedInvestment {
	groups := []model.GroupedInvestment{}
	index := map[string]int{}

	for _, inv := range investments {
		projectID := inv.ProjectID
		project := inv.Project
		if project != nil && project.ID != "" {
			projectID = project.ID
		}
		if projectID == "" {
			continue // orphaned record
		}
		if project == nil {
			if p, ok := projects[projectID]; ok {
				project = &p
			}
		}

		i, ok := index[projectID]
		if !ok {
			i = len(groups)
			index[projectID] = i
			groups = append(groups, model.GroupedInvestment{ProjectID: projectID})
		}

		g := &groups[i]
		if g.Project == nil {
			g.Project = project
		}
		g.TotalAmount += inv.Amount
		g.TotalCurrentValue += inv.EffectiveValue()
		g.InvestmentsCount++
		g.Payouts = append(g.Payouts, visiblePayouts(inv)...)
		if inv.Date.After(g.LastInvestDate) {
			g.LastInvestDate = inv.Date
		}
	}

	return groups
}

// visiblePayouts returns the payouts of an investment that should remain in
// grouped views. A fully exited investment keeps only its processed payouts;
// its pending entries describe a position that no longer exists.
func visiblePayouts(inv model.Investment) []model.Payout {
	if !inv.Exited() {
		return inv.Payouts
	}
	var processed []model.Payout
	for _, p := range inv.Payouts {
		if p.Status == model.PayoutProcessed {
			processed = append(processed, p)
		}
	}
	return processed
}
