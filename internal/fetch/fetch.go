package fetch

import (
	"context"
	"time"

	"github.com/xieerduoyishengzhidi/pentosh-brain/internal/contracts"
	"github.com/xieerduoyishengzhidi/pentosh-brain/internal/macro"
)

// Fetcher produces one indicator per run. Implementations never return an
// error: every failure resolves to an absent IndicatorValue so one dead
// source cannot take down a collection run.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context) contracts.IndicatorValue
}

// Window policies per source class.
const (
	balanceSheetWindow = 30 * 24 * time.Hour // weekly FRED balance-sheet series
	rateWindow         = 60 * 24 * time.Hour // daily FRED rate/spread series
	quotePeriod        = "3mo"
	quoteInterval      = "1d"
)

const dateLayout = "2006-01-02"

// lastSeriesValue scans a series backwards for the most recent non-null
// observation.
func lastSeriesValue(points []macro.SeriesPoint) (float64, time.Time, bool) {
	for i := len(points) - 1; i >= 0; i-- {
		if points[i].Value == nil {
			continue
		}
		asOf, err := time.Parse(dateLayout, points[i].Date)
		if err != nil {
			asOf = time.Time{}
		}
		return *points[i].Value, asOf, true
	}
	return 0, time.Time{}, false
}

// lastClose scans daily bars backwards for the most recent non-null close.
func lastClose(bars []macro.Bar) (float64, time.Time, bool) {
	for i := len(bars) - 1; i >= 0; i-- {
		if bars[i].Close == nil {
			continue
		}
		asOf, err := time.Parse(dateLayout, bars[i].Date)
		if err != nil {
			asOf = time.Time{}
		}
		return *bars[i].Close, asOf, true
	}
	return 0, time.Time{}, false
}

// stale reports whether an observation is older than the configured age
// limit. A zero maxAgeDays disables the check; an unparsable as-of date
// never counts as stale.
func stale(asOf, now time.Time, maxAgeDays int) bool {
	if maxAgeDays <= 0 || asOf.IsZero() {
		return false
	}
	return now.Sub(asOf) > time.Duration(maxAgeDays)*24*time.Hour
}
