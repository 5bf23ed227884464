package weather

// MaxForecastDays is the number of days shown after today.
const MaxForecastDays = 5

// DailyEntry is the representative sample chosen for one calendar day.
type DailyEntry struct {
	Date   string `json:"date"` // YYYY-MM-DD in the place's local calendar
	Sample Sample `json:"sample"`
}

// DailyForecast collapses an interval series into one sample per calendar day,
// keeping the first sample seen for each day. The first day is today and is
// dropped; at most MaxForecastDays entries are returned.
func DailyForecast(series ForecastSeries) []DailyEntry {
	if len(series.Samples) == 0 {
		return []DailyEntry{}
	}

	type dayKey string

	loc := series.Location()
	seen := make(map[dayKey]bool)
	days := make([]DailyEntry, 0, MaxForecastDays+1)

	for _, s := range series.Samples {
		k := dayKey(s.Time(loc).Format("2006-01-02"))
		if seen[k] {
			continue
		}
		seen[k] = true
		days = append(days, DailyEntry{Date: string(k), Sample: s})
	}

	days = days[1:]
	if len(days) > MaxForecastDays {
		days = days[:MaxForecastDays]
	}
	return days
}
