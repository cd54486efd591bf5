package finance

import (
	"ewaste-exchange-go/internal/models"

	"github.com/shopspring/decimal"
)

// Summary holds aggregate financial figures over a snapshot of item records.
type Summary struct {
	Revenue decimal.Decimal
	Cost    decimal.Decimal
	Profit  decimal.Decimal

	Sold     int
	Recycled int
	Scrapped int
	Listed   int
	Pending  int
}

// Aggregate computes revenue, cost and profit over items. It is a pure
// function of the snapshot: order-independent and safe to re-run.
//
// Per-item contribution:
//   - sold: revenue += selling price; cost += payout + repair
//   - recycled: revenue += fixed recycle value; cost += payout
//   - any other state with a payout made: cost += payout + repair
//     (sunk acquisition cost with no recovered revenue)
//   - awaiting valuation: no contribution
//
// Repair cost counts toward cost in every branch where it was incurred, not
// only on sold items.
func Aggregate(items []models.Item) Summary {
	summary := Summary{
		Revenue: decimal.Zero,
		Cost:    decimal.Zero,
	}

	for _, item := range items {
		switch item.Status {
		case models.StatusSold:
			summary.Sold++
			summary.Revenue = summary.Revenue.Add(item.SellingPrice)
			summary.Cost = summary.Cost.Add(item.FinalPayout).Add(item.RepairCost)
		case models.StatusRecycled:
			summary.Recycled++
			summary.Revenue = summary.Revenue.Add(models.RecycleResaleValue)
			summary.Cost = summary.Cost.Add(item.FinalPayout)
		case models.StatusAwaitingValuation:
			summary.Pending++
		default:
			if item.Status == models.StatusScrapped {
				summary.Scrapped++
			} else {
				summary.Listed++
			}
			if item.FinalPayout.GreaterThan(decimal.Zero) {
				summary.Cost = summary.Cost.Add(item.FinalPayout).Add(item.RepairCost)
			}
		}
	}

	summary.Profit = summary.Revenue.Sub(summary.Cost)
	return summary
}
