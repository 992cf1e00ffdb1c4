package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"datatable-backend/internal/descriptor"
	"datatable-backend/internal/models"
)

var ErrUnknownModel = errors.New("unknown model")
var ErrUnknownField = errors.New("unknown field")
var ErrInvalidTimeframe = errors.New("invalid timeframe")

// Metric is the value of one KPI item.
type Metric struct {
	ID    string          `json:"id"`
	Value decimal.Decimal `json:"value"`
}

// Point is the row count of one time bucket.
type Point struct {
	Bucket time.Time `json:"bucket"`
	Count  int64     `json:"count"`
}

// Line is a time series restricted to one series aggregation.
type Line struct {
	ID     string  `json:"id"`
	Points []Point `json:"points"`
}

// Slice is one segment of a pie chart.
type Slice struct {
	ID    string `json:"id"`
	Count int64  `json:"count"`
}

type Chart struct {
	ID        string               `json:"id"`
	Type      descriptor.ChartType `json:"type"`
	Timeframe descriptor.Timeframe `json:"timeframe"`
	Points    []Point              `json:"points,omitempty"`
	Lines     []Line               `json:"lines,omitempty"`
	Slices    []Slice              `json:"slices,omitempty"`
}

// Report is the evaluated analytics of one entity.
type Report struct {
	Timeframe descriptor.Timeframe `json:"timeframe"`
	KPIs      []Metric             `json:"kpis"`
	Charts    []Chart              `json:"charts"`
}

// Aggregator evaluates analytics descriptors against the database. Table and
// column names come from the models catalog only; filter values are bound.
type Aggregator struct {
	store  *Store
	models *models.Catalog
	now    func() time.Time
}

func NewAggregator(s *Store, cat *models.Catalog) *Aggregator {
	return &Aggregator{store: s, models: cat, now: time.Now}
}

// Run evaluates every item of cfg. KPIs count the whole table; charts cover
// tf, or the item's first timeframe when it does not offer tf.
func (a *Aggregator) Run(ctx context.Context, cfg descriptor.AnalyticsConfig, tf descriptor.Timeframe) (*Report, error) {
	if !tf.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimeframe, tf)
	}
	rep := &Report{Timeframe: tf, KPIs: []Metric{}, Charts: []Chart{}}
	now := a.now()
	for _, gi := range cfg.Items() {
		it := gi.Item
		m := a.models.Get(it.Model)
		if m == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownModel, it.Model)
		}
		switch gi.Group {
		case descriptor.GroupKPI:
			v, err := a.kpi(ctx, m, it)
			if err != nil {
				return nil, fmt.Errorf("kpi %s: %w", it.ID, err)
			}
			rep.KPIs = append(rep.KPIs, Metric{ID: it.ID, Value: v})
		case descriptor.GroupChart:
			c, err := a.chart(ctx, m, it, itemTimeframe(it, tf), now)
			if err != nil {
				return nil, fmt.Errorf("chart %s: %w", it.ID, err)
			}
			rep.Charts = append(rep.Charts, c)
		}
	}
	return rep, nil
}

func itemTimeframe(it descriptor.AnalyticsItem, tf descriptor.Timeframe) descriptor.Timeframe {
	if len(it.Timeframes) == 0 {
		return tf
	}
	for _, t := range it.Timeframes {
		if t == tf {
			return tf
		}
	}
	return it.Timeframes[0]
}

// where collects filter conditions for one query.
type where struct {
	d     Dialect
	pb    ParamBuilder
	conds []string
}

func (a *Aggregator) newWhere() *where {
	return &where{d: a.store.Dialect, pb: a.store.Dialect.NewParamBuilder()}
}

func (w *where) eq(m *models.Model, agg *descriptor.Aggregation) error {
	if agg == nil {
		return nil
	}
	if !m.HasField(agg.Field) {
		return fmt.Errorf("%w: %s.%s", ErrUnknownField, m.Name, agg.Field)
	}
	w.conds = append(w.conds, QuoteIdent(agg.Field)+" = "+w.pb.Add(w.d.Arg(agg.Value)))
	return nil
}

func (w *where) since(col string, t time.Time) {
	w.conds = append(w.conds, QuoteIdent(col)+" >= "+w.pb.Add(w.d.Arg(t)))
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

func (a *Aggregator) kpi(ctx context.Context, m *models.Model, it descriptor.AnalyticsItem) (decimal.Decimal, error) {
	expr := "COUNT(*)"
	if it.Sum != "" {
		f, ok := m.Field(it.Sum)
		if !ok || !f.IsNumeric() {
			return decimal.Zero, fmt.Errorf("%w: %s.%s", ErrUnknownField, m.Name, it.Sum)
		}
		expr = "COALESCE(SUM(" + QuoteIdent(it.Sum) + "), 0)"
	}
	w := a.newWhere()
	if err := w.eq(m, it.Aggregation); err != nil {
		return decimal.Zero, err
	}
	row, err := QueryRow(ctx, a.store.DB,
		fmt.Sprintf("SELECT %s AS value FROM %s%s", expr, QuoteIdent(m.Table), w),
		w.pb.Params()...)
	if err != nil {
		return decimal.Zero, err
	}
	return decimalOf(row["value"])
}

func (a *Aggregator) chart(ctx context.Context, m *models.Model, it descriptor.AnalyticsItem, tf descriptor.Timeframe, now time.Time) (Chart, error) {
	c := Chart{ID: it.ID, Type: it.ChartType, Timeframe: tf}

	if it.ChartType == descriptor.ChartPie {
		for _, s := range it.Series {
			n, err := a.count(ctx, m, it.Aggregation, &s.Aggregation, tf, now)
			if err != nil {
				return Chart{}, err
			}
			c.Slices = append(c.Slices, Slice{ID: s.ID, Count: n})
		}
		return c, nil
	}

	if m.Timestamp == "" {
		return Chart{}, fmt.Errorf("model %s has no timestamp field", m.Name)
	}
	if len(it.Series) == 0 {
		pts, err := a.series(ctx, m, it.Aggregation, nil, tf, now)
		if err != nil {
			return Chart{}, err
		}
		c.Points = pts
		return c, nil
	}
	for _, s := range it.Series {
		pts, err := a.series(ctx, m, it.Aggregation, &s.Aggregation, tf, now)
		if err != nil {
			return Chart{}, err
		}
		c.Lines = append(c.Lines, Line{ID: s.ID, Points: pts})
	}
	return c, nil
}

// count returns the rows matching both aggregations, restricted to the
// timeframe when the model is timestamped.
func (a *Aggregator) count(ctx context.Context, m *models.Model, base, extra *descriptor.Aggregation, tf descriptor.Timeframe, now time.Time) (int64, error) {
	w := a.newWhere()
	if err := w.eq(m, base); err != nil {
		return 0, err
	}
	if err := w.eq(m, extra); err != nil {
		return 0, err
	}
	if m.Timestamp != "" {
		w.since(m.Timestamp, tf.Buckets(now)[0])
	}
	row, err := QueryRow(ctx, a.store.DB,
		fmt.Sprintf("SELECT COUNT(*) AS value FROM %s%s", QuoteIdent(m.Table), w),
		w.pb.Params()...)
	if err != nil {
		return 0, err
	}
	return int64Of(row["value"])
}

// series counts rows per bucket and fills empty buckets with zero.
func (a *Aggregator) series(ctx context.Context, m *models.Model, base, extra *descriptor.Aggregation, tf descriptor.Timeframe, now time.Time) ([]Point, error) {
	buckets := tf.Buckets(now)
	w := a.newWhere()
	if err := w.eq(m, base); err != nil {
		return nil, err
	}
	if err := w.eq(m, extra); err != nil {
		return nil, err
	}
	w.since(m.Timestamp, buckets[0])

	bucket := a.store.Dialect.BucketExpr(QuoteIdent(m.Timestamp), tf.Bucket())
	rows, err := QueryRows(ctx, a.store.DB,
		fmt.Sprintf("SELECT %s AS bucket, COUNT(*) AS value FROM %s%s GROUP BY 1", bucket, QuoteIdent(m.Table), w),
		w.pb.Params()...)
	if err != nil {
		return nil, err
	}

	counts := make(map[int64]int64, len(rows))
	for _, r := range rows {
		t, ok := timeOf(r["bucket"])
		if !ok {
			continue
		}
		n, err := int64Of(r["value"])
		if err != nil {
			return nil, err
		}
		counts[t.Unix()] += n
	}

	pts := make([]Point, len(buckets))
	for i, b := range buckets {
		pts[i] = Point{Bucket: b, Count: counts[b.Unix()]}
	}
	return pts, nil
}

func int64Of(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int32:
		return int64(n), nil
	case int:
		return int64(n), nil
	case float64:
		return int64(n), nil
	case string:
		return strconv.ParseInt(n, 10, 64)
	case nil:
		return 0, nil
	}
	return 0, fmt.Errorf("unexpected count type %T", v)
}

func decimalOf(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case nil:
		return decimal.Zero, nil
	case int64:
		return decimal.NewFromInt(n), nil
	case int32:
		return decimal.NewFromInt32(n), nil
	case float64:
		return decimal.NewFromFloat(n), nil
	case string:
		return decimal.NewFromString(n)
	case []byte:
		return decimal.NewFromString(string(n))
	}
	return decimal.Zero, fmt.Errorf("unexpected sum type %T", v)
}
