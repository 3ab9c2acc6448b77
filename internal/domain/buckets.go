package domain

import (
	"fmt"
	"time"
)

type TimeRange string

const (
	TimeRangeDaily   TimeRange = "daily"
	TimeRangeWeekly  TimeRange = "weekly"
	TimeRangeMonthly TimeRange = "monthly"
)

func (r TimeRange) Valid() bool {
	switch r {
	case TimeRangeDaily, TimeRangeWeekly, TimeRangeMonthly:
		return true
	default:
		return false
	}
}

// Bucket is an inclusive [Start, End] date range.
type Bucket struct {
	ID    string
	Label string
	Start time.Time
	End   time.Time
}

func (b Bucket) Contains(t time.Time) bool {
	return !t.Before(b.Start) && !t.After(b.End)
}

// Buckets builds the date ranges for a time range around now, in now's
// location. Unknown ranges fall back to weekly.
func Buckets(r TimeRange, now time.Time, firstDayOfWeek time.Weekday) []Bucket {
	switch r {
	case TimeRangeDaily:
		return dailyBuckets(now, firstDayOfWeek)
	case TimeRangeMonthly:
		return monthlyBuckets(now)
	default:
		return weeklyBuckets(now)
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func startOfWeek(t time.Time, firstDay time.Weekday) time.Time {
	day := startOfDay(t)
	offset := (int(day.Weekday()) - int(firstDay) + 7) % 7
	return day.AddDate(0, 0, -offset)
}

func endOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m+1, 1, 0, 0, 0, 0, t.Location()).Add(-time.Nanosecond)
}

// dailyBuckets: seven days starting at the first day of now's week.
func dailyBuckets(now time.Time, firstDay time.Weekday) []Bucket {
	weekStart := startOfWeek(now, firstDay)
	buckets := make([]Bucket, 0, 7)
	for i := 0; i < 7; i++ {
		day := weekStart.AddDate(0, 0, i)
		buckets = append(buckets, Bucket{
			ID:    day.Format("2006-01-02"),
			Label: day.Format("Monday, 2 Jan 2006"),
			Start: day,
			End:   day.AddDate(0, 0, 1).Add(-time.Nanosecond),
		})
	}

	return buckets
}

// weeklyBuckets: days 1-7, 8-14, ... of now's month, last one clipped.
func weeklyBuckets(now time.Time) []Bucket {
	y, m, _ := now.Date()
	monthStart := time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
	monthEnd := endOfMonth(now)

	var buckets []Bucket
	week := 1
	for start := monthStart; !start.After(monthEnd); start = start.AddDate(0, 0, 7) {
		end := start.AddDate(0, 0, 7).Add(-time.Nanosecond)
		if end.After(monthEnd) {
			end = monthEnd
		}
		buckets = append(buckets, Bucket{
			ID:    fmt.Sprintf("week-%d", week),
			Label: fmt.Sprintf("Week %d (%d-%s)", week, start.Day(), end.Format("2 Jan")),
			Start: start,
			End:   end,
		})
		week++
	}

	return buckets
}

func monthlyBuckets(now time.Time) []Bucket {
	buckets := make([]Bucket, 0, 12)
	for m := time.January; m <= time.December; m++ {
		start := time.Date(now.Year(), m, 1, 0, 0, 0, 0, now.Location())
		buckets = append(buckets, Bucket{
			ID:    start.Format("2006-01"),
			Label: start.Format("January 2006"),
			Start: start,
			End:   endOfMonth(start),
		})
	}

	return buckets
}

// BucketFor returns the first bucket containing t.
func BucketFor(t time.Time, buckets []Bucket) (Bucket, bool) {
	for _, b := range buckets {
		if b.Contains(t) {
			return b, true
		}
	}

	return Bucket{}, false
}

// FetchRange spans every bucket. With no buckets it covers now's year.
func FetchRange(buckets []Bucket, now time.Time) (time.Time, time.Time) {
	if len(buckets) == 0 {
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(1, 0, 0).Add(-time.Nanosecond)
	}

	return buckets[0].Start, buckets[len(buckets)-1].End
}

type BucketSummary struct {
	Bucket       Bucket
	Summary      Summary
	Transactions []Transaction
}

// GroupTransactions assigns transactions to buckets and totals each one.
// Transactions outside every bucket are dropped.
func GroupTransactions(txs []Transaction, buckets []Bucket, wallets []Wallet, frozen FrozenSet, displayCurrency string, rates RateTable) []BucketSummary {
	grouped := make([]BucketSummary, len(buckets))
	for i, b := range buckets {
		grouped[i].Bucket = b
	}

	for _, tx := range txs {
		date := tx.Date.In(locationOf(buckets))
		for i := range grouped {
			if grouped[i].Bucket.Contains(date) {
				grouped[i].Transactions = append(grouped[i].Transactions, tx)
				break
			}
		}
	}

	for i := range grouped {
		grouped[i].Summary = SummarizeTransactions(grouped[i].Transactions, wallets, frozen, displayCurrency, rates)
	}

	return grouped
}

func locationOf(buckets []Bucket) *time.Location {
	if len(buckets) == 0 {
		return time.UTC
	}

	return buckets[0].Start.Location()
}
