package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/anvilworks/forgeledger/internal/currency"
	"github.com/anvilworks/forgeledger/internal/ledger"
)

// reportRange resolves the transaction window for a report request:
// explicit RFC 3339 start/end parameters win, otherwise the window is the
// current period of the requested granularity.
func reportRange(r *http.Request, granularity ledger.Granularity) (start, end time.Time, err error) {
	q := r.URL.Query()
	startStr, endStr := q.Get("start"), q.Get("end")
	if startStr == "" && endStr == "" {
		start, end = ledger.RangeFor(granularity, time.Now())
		return start, end, nil
	}
	if start, err = time.Parse(time.RFC3339, startStr); err != nil {
		return start, end, fmt.Errorf(ErrMsgInvalidDateParam, "start")
	}
	if end, err = time.Parse(time.RFC3339, endStr); err != nil {
		return start, end, fmt.Errorf(ErrMsgInvalidDateParam, "end")
	}
	return start, end, nil
}

func parseGranularity(r *http.Request) (ledger.Granularity, bool) {
	g := ledger.Granularity(r.URL.Query().Get("granularity"))
	if g == "" {
		g = ledger.GranularityMonth
	}
	return g, g.Valid()
}

// SummaryResponse is a financial summary over a transaction window. The
// display block carries the same figures pre-formatted with the shop's
// currency symbol.
type SummaryResponse struct {
	Start   time.Time      `json:"start"`
	End     time.Time      `json:"end"`
	Summary ledger.Summary `json:"summary"`
	Display SummaryDisplay `json:"display"`
}

// SummaryDisplay holds currency-formatted summary figures.
type SummaryDisplay struct {
	Revenue string `json:"revenue"`
	Costs   string `json:"costs"`
	Profit  string `json:"profit"`
}

// HandleReportSummary returns revenue, costs and profit over a window
func HandleReportSummary(led *ledger.Ledger, reporter *ledger.Reporter, money *currency.Formatter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		granularity, ok := parseGranularity(r)
		if !ok {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidGranularity)
			return
		}

		start, end, err := reportRange(r, granularity)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		summary := reporter.Summarize(led.FilterByRange(start, end))
		respondJSON(w, http.StatusOK, SummaryResponse{
			Start:   start,
			End:     end,
			Summary: summary,
			Display: SummaryDisplay{
				Revenue: money.Format(summary.TotalRevenue),
				Costs:   money.Format(summary.TotalCosts),
				Profit:  money.Format(summary.NetProfit),
			},
		})
	}
}

// HandleReportProducts returns per-product sales performance over a window,
// ordered by revenue
func HandleReportProducts(led *ledger.Ledger, reporter *ledger.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		granularity, ok := parseGranularity(r)
		if !ok {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidGranularity)
			return
		}

		start, end, err := reportRange(r, granularity)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		transactions := led.FilterByRange(start, end)
		respondJSON(w, http.StatusOK, reporter.ProductPerformance(transactions))
	}
}

// HandleReportPeriods buckets the full transaction history by calendar
// period at the requested granularity
func HandleReportPeriods(led *ledger.Ledger, reporter *ledger.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		granularity, ok := parseGranularity(r)
		if !ok {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidGranularity)
			return
		}

		respondJSON(w, http.StatusOK, reporter.GroupByPeriod(led.All(), granularity))
	}
}

// HandleListTransactions returns the raw transaction history, optionally
// filtered by an explicit window
func HandleListTransactions(led *ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("start") == "" && q.Get("end") == "" {
			respondJSON(w, http.StatusOK, led.All())
			return
		}

		start, err := time.Parse(time.RFC3339, q.Get("start"))
		if err != nil {
			respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidDateParam, "start"))
			return
		}
		end, err := time.Parse(time.RFC3339, q.Get("end"))
		if err != nil {
			respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidDateParam, "end"))
			return
		}
		respondJSON(w, http.StatusOK, led.FilterByRange(start, end))
	}
}
