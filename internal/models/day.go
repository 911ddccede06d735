package models

import "time"

// DayBucket is a per-day rollup. It is recomputed on every query.
type DayBucket struct {
	Date            string  `json:"date"`
	Label           string  `json:"label"`
	Weekday         string  `json:"weekday"`
	TotalCaffeineMg int     `json:"total_caffeine_mg"`
	SleepHours      float64 `json:"sleep_hours"`
	SleepQuality    int     `json:"sleep_quality"`
	NapCount        int     `json:"nap_count"`
	NapHours        float64 `json:"nap_hours"`
}

// BucketFill holds bucket values as fractions of the dashboard maxima.
type BucketFill struct {
	Caffeine     float64 `json:"caffeine"`
	Sleep        float64 `json:"sleep"`
	Naps         float64 `json:"naps"`
	SleepQuality float64 `json:"sleep_quality"`
}

// DayTotals is a normalized day record. Only dates that have entries
// produce one.
type DayTotals struct {
	Date       string  `json:"date"`
	CaffeineMg int     `json:"caffeine_mg"`
	HoursSlept float64 `json:"hours_slept"`
	NapHours   float64 `json:"nap_hours"`
}

type ChartSeries struct {
	Dates      []time.Time `json:"dates"`
	HoursSlept []float64   `json:"hours_slept"`
	Naps       []float64   `json:"naps"`
	Caffeine   []float64   `json:"caffeine"`
}

func (series ChartSeries) Len() int {
	return len(series.Dates)
}

type SeriesAverages struct {
	HoursSlept float64 `json:"hours_slept"`
	Naps       float64 `json:"naps"`
	Caffeine   float64 `json:"caffeine"`
}

type ChartWindow struct {
	Start           int            `json:"start"`
	Size            int            `json:"size"`
	Total           int            `json:"total"`
	Series          ChartSeries    `json:"series"`
	CanPageForward  bool           `json:"can_page_forward"`
	CanPageBack     bool           `json:"can_page_back"`
	WindowAverages  SeriesAverages `json:"window_averages"`
	OverallAverages SeriesAverages `json:"overall_averages"`
}

type DaySummary struct {
	Date            string           `json:"date"`
	TotalCaffeineMg int              `json:"total_caffeine_mg"`
	SleepCount      int              `json:"sleep_count"`
	NapCount        int              `json:"nap_count"`
	Entries         EntryCollections `json:"entries"`
}

type TimelineItem struct {
	ID      string    `json:"id"`
	Type    EntryType `json:"type"`
	SortKey time.Time `json:"time"`
	Title   string    `json:"title"`
	Detail  string    `json:"detail"`
	Entry   Entry     `json:"entry"`
}

type TimelineSection struct {
	Date  string         `json:"date"`
	Title string         `json:"title"`
	Items []TimelineItem `json:"items"`
}
