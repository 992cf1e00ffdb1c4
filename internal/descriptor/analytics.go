package descriptor

import (
	"time"

	"datatable-backend/internal/i18n"
)

type GroupType string

const (
	GroupKPI   GroupType = "kpi"
	GroupChart GroupType = "chart"
)

type ChartType string

const (
	ChartLine ChartType = "line"
	ChartBar  ChartType = "bar"
	ChartArea ChartType = "area"
	ChartPie  ChartType = "pie"
)

func (c ChartType) Valid() bool {
	switch c {
	case ChartLine, ChartBar, ChartArea, ChartPie:
		return true
	}
	return false
}

// Timeframe is the window a chart covers.
type Timeframe string

const (
	Timeframe24h Timeframe = "24h"
	Timeframe7d  Timeframe = "7d"
	Timeframe30d Timeframe = "30d"
	Timeframe3m  Timeframe = "3m"
	Timeframe6m  Timeframe = "6m"
	Timeframe1y  Timeframe = "1y"
)

// Bucket is the width of one point of a time series.
type Bucket string

const (
	BucketHour  Bucket = "hour"
	BucketDay   Bucket = "day"
	BucketMonth Bucket = "month"
)

var timeframes = map[Timeframe]struct {
	bucket Bucket
	n      int
}{
	Timeframe24h: {BucketHour, 24},
	Timeframe7d:  {BucketDay, 7},
	Timeframe30d: {BucketDay, 30},
	Timeframe3m:  {BucketMonth, 3},
	Timeframe6m:  {BucketMonth, 6},
	Timeframe1y:  {BucketMonth, 12},
}

func (t Timeframe) Valid() bool {
	_, ok := timeframes[t]
	return ok
}

// Bucket returns the series granularity of t.
func (t Timeframe) Bucket() Bucket {
	return timeframes[t].bucket
}

// Buckets returns the start of every bucket of t ending at now, oldest first,
// in UTC. The last bucket contains now.
func (t Timeframe) Buckets(now time.Time) []time.Time {
	span, ok := timeframes[t]
	if !ok {
		return nil
	}
	now = now.UTC()
	out := make([]time.Time, span.n)
	for i := range span.n {
		back := span.n - 1 - i
		switch span.bucket {
		case BucketHour:
			out[i] = now.Truncate(time.Hour).Add(-time.Duration(back) * time.Hour)
		case BucketDay:
			d := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
			out[i] = d.AddDate(0, 0, -back)
		case BucketMonth:
			m := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
			out[i] = m.AddDate(0, -back, 0)
		}
	}
	return out
}

// Aggregation filters the rows an item counts.
type Aggregation struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

// Series is one slice of a pie chart.
type Series struct {
	ID          string      `json:"id"`
	Title       i18n.Key    `json:"title"`
	Color       string      `json:"color,omitempty"`
	Aggregation Aggregation `json:"aggregation"`
}

type AnalyticsItem struct {
	ID          string       `json:"id"`
	Title       i18n.Key     `json:"title"`
	Model       string       `json:"model"`
	Metric      string       `json:"metric"`
	Aggregation *Aggregation `json:"aggregation,omitempty"`
	// Sum names a numeric field to total instead of counting rows.
	Sum        string      `json:"sum,omitempty"`
	Icon       string      `json:"icon,omitempty"`
	ChartType  ChartType   `json:"chartType,omitempty"`
	Timeframes []Timeframe `json:"timeframes,omitempty"`
	Series     []Series    `json:"series,omitempty"`
}

type AnalyticsGroup struct {
	Type  GroupType       `json:"type"`
	Items []AnalyticsItem `json:"items"`
}

type AnalyticsConfig []AnalyticsGroup

// Items returns every item with the type of its group.
func (a AnalyticsConfig) Items() []GroupedItem {
	var out []GroupedItem
	for _, g := range a {
		for _, it := range g.Items {
			out = append(out, GroupedItem{Group: g.Type, Item: it})
		}
	}
	return out
}

type GroupedItem struct {
	Group GroupType
	Item  AnalyticsItem
}
