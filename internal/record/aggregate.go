package record

// DefaultBudget is the expected work time per record: 9 hours in ms.
const DefaultBudget int64 = 9 * 60 * 60 * 1000

// Summary holds the aggregates derived from a log and a budget.
type Summary struct {
	TotalMs   int64
	ReducedMs int64
	Count     int
	BudgetMs  int64
}

// TotalDuration sums the durations of closed records. Open records count as 0.
func TotalDuration(records []Record) int64 {
	var total int64
	for _, r := range records {
		if d, ok := r.TotalDuration.Get(); ok {
			total += d
		}
	}
	return total
}

// ReducedDuration is total minus count*budget. It is negative when the log
// is under budget. Open records are part of count.
func ReducedDuration(totalMs int64, count int, budgetMs int64) int64 {
	return totalMs - int64(count)*budgetMs
}

// Summarize computes the Summary for records under budgetMs.
func Summarize(records []Record, budgetMs int64) Summary {
	total := TotalDuration(records)
	return Summary{
		TotalMs:   total,
		ReducedMs: ReducedDuration(total, len(records), budgetMs),
		Count:     len(records),
		BudgetMs:  budgetMs,
	}
}
