package ledger

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/anvilworks/forgeledger/internal/domain"
	"github.com/anvilworks/forgeledger/internal/inventory"
)

// Granularity selects the reporting period alignment.
type Granularity string

const (
	GranularityDay     Granularity = "day"
	GranularityWeek    Granularity = "week"
	GranularityMonth   Granularity = "month"
	GranularityQuarter Granularity = "quarter"
	GranularityYear    Granularity = "year"
)

// Valid reports whether g is a known granularity.
func (g Granularity) Valid() bool {
	switch g {
	case GranularityDay, GranularityWeek, GranularityMonth, GranularityQuarter, GranularityYear:
		return true
	}
	return false
}

// Summary aggregates revenue, costs and profit over a set of transactions.
type Summary struct {
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	TotalCosts   decimal.Decimal `json:"totalCosts"`
	NetProfit    decimal.Decimal `json:"netProfit"`
	ProfitMargin decimal.Decimal `json:"profitMargin"` // percent, 0 when revenue is 0
}

// ProductStats aggregates sales of one crafted item.
type ProductStats struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Revenue   decimal.Decimal `json:"revenue"`
	UnitsSold int             `json:"unitsSold"`
	Profit    decimal.Decimal `json:"profit"`
}

// PeriodBucket is one time bucket of the grouped report.
type PeriodBucket struct {
	Key     string          `json:"key"`
	Start   time.Time       `json:"start"`
	Revenue decimal.Decimal `json:"revenue"`
	Costs   decimal.Decimal `json:"costs"`
	Profit  decimal.Decimal `json:"profit"`
}

// Reporter builds report aggregations over ledger transactions. Craft
// costs are valued at the crafted item's current production cost, not a
// historical one, so reports shift when costs are re-snapshotted.
type Reporter struct {
	inv *inventory.Store
}

// NewReporter creates a reporter resolving item costs against the store.
func NewReporter(inv *inventory.Store) *Reporter {
	return &Reporter{inv: inv}
}

// craftCost values a craft transaction line at current crafted-item cost.
func (r *Reporter) craftCost(line domain.TransactionLine) decimal.Decimal {
	item := r.inv.FindCraftedItem(line.ID)
	if item == nil {
		return decimal.Zero
	}
	return item.Cost.Mul(decimal.NewFromInt(int64(line.Quantity)))
}

// Summarize computes the headline metrics over the given transactions:
// sales count toward revenue, purchases toward costs, and crafts toward
// costs at current crafted-item cost.
func (r *Reporter) Summarize(transactions []domain.Transaction) Summary {
	revenue := decimal.Zero
	costs := decimal.Zero
	for _, tx := range transactions {
		switch tx.Type {
		case domain.TransactionSale:
			revenue = revenue.Add(tx.TotalValue)
		case domain.TransactionPurchase:
			costs = costs.Add(tx.TotalValue)
		case domain.TransactionCraft:
			for _, line := range tx.Items {
				costs = costs.Add(r.craftCost(line))
			}
		}
	}
	net := revenue.Sub(costs)
	margin := decimal.Zero
	if revenue.IsPositive() {
		margin = net.Div(revenue).Mul(decimal.NewFromInt(100))
	}
	return Summary{TotalRevenue: revenue, TotalCosts: costs, NetProfit: net, ProfitMargin: margin}
}

// ProductPerformance aggregates sale transactions per crafted item,
// ordered by revenue, highest first. Line profit is computed against the
// item's current production cost.
func (r *Reporter) ProductPerformance(transactions []domain.Transaction) []ProductStats {
	byID := make(map[string]*ProductStats)
	var order []string
	for _, tx := range transactions {
		if tx.Type != domain.TransactionSale {
			continue
		}
		for _, line := range tx.Items {
			stats, ok := byID[line.ID]
			if !ok {
				name := line.Name
				if item := r.inv.FindCraftedItem(line.ID); item != nil {
					name = item.Name
				}
				stats = &ProductStats{ID: line.ID, Name: name, Revenue: decimal.Zero, Profit: decimal.Zero}
				byID[line.ID] = stats
				order = append(order, line.ID)
			}
			qty := decimal.NewFromInt(int64(line.Quantity))
			lineRevenue := line.Value.Mul(qty)
			cost := decimal.Zero
			if item := r.inv.FindCraftedItem(line.ID); item != nil {
				cost = item.Cost
			}
			stats.Revenue = stats.Revenue.Add(lineRevenue)
			stats.UnitsSold += line.Quantity
			stats.Profit = stats.Profit.Add(lineRevenue.Sub(cost.Mul(qty)))
		}
	}
	out := make([]ProductStats, 0, len(order))
	for _, id := range order {
		out = append(out, *byID[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Revenue.GreaterThan(out[j].Revenue)
	})
	return out
}

// GroupByPeriod buckets transactions into granularity-aligned periods,
// accumulating revenue and costs with the same rules as Summarize.
// Buckets come back in chronological order.
func (r *Reporter) GroupByPeriod(transactions []domain.Transaction, granularity Granularity) []PeriodBucket {
	byKey := make(map[string]*PeriodBucket)
	for _, tx := range transactions {
		start := PeriodStart(tx.Date, granularity)
		key := PeriodKey(tx.Date, granularity)
		bucket, ok := byKey[key]
		if !ok {
			bucket = &PeriodBucket{Key: key, Start: start, Revenue: decimal.Zero, Costs: decimal.Zero}
			byKey[key] = bucket
		}
		switch tx.Type {
		case domain.TransactionSale:
			bucket.Revenue = bucket.Revenue.Add(tx.TotalValue)
		case domain.TransactionPurchase:
			bucket.Costs = bucket.Costs.Add(tx.TotalValue)
		case domain.TransactionCraft:
			for _, line := range tx.Items {
				bucket.Costs = bucket.Costs.Add(r.craftCost(line))
			}
		}
	}
	out := make([]PeriodBucket, 0, len(byKey))
	for _, b := range byKey {
		b.Profit = b.Revenue.Sub(b.Costs)
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

// PeriodStart returns the aligned start of the period containing t.
// Weeks start on Sunday.
func PeriodStart(t time.Time, granularity Granularity) time.Time {
	switch granularity {
	case GranularityDay:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	case GranularityWeek:
		return time.Date(t.Year(), t.Month(), t.Day()-int(t.Weekday()), 0, 0, 0, 0, t.Location())
	case GranularityMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	case GranularityQuarter:
		quarter := (int(t.Month()) - 1) / 3
		return time.Date(t.Year(), time.Month(quarter*3+1), 1, 0, 0, 0, 0, t.Location())
	case GranularityYear:
		return time.Date(t.Year(), 1, 1, 0, 0, 0, 0, t.Location())
	default:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	}
}

// PeriodKey formats the display key for the period containing t.
func PeriodKey(t time.Time, granularity Granularity) string {
	start := PeriodStart(t, granularity)
	switch granularity {
	case GranularityDay:
		return start.Format("2006-01-02")
	case GranularityWeek:
		return "wk " + start.Format("2006-01-02")
	case GranularityMonth:
		return start.Format("2006-01")
	case GranularityQuarter:
		return fmt.Sprintf("%d-Q%d", start.Year(), (int(start.Month())-1)/3+1)
	case GranularityYear:
		return start.Format("2006")
	default:
		return start.Format("2006-01")
	}
}

// RangeFor returns the inclusive report range for a granularity ending at
// now: from the aligned period start through now.
func RangeFor(granularity Granularity, now time.Time) (start, end time.Time) {
	return PeriodStart(now, granularity), now
}
