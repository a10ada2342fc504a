// Package chart draws the single best-effort chart attached to a chat answer.
package chart

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/color"
	"math"
	"sort"

	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"provolx/provolx/services/analysis"
	"provolx/provolx/utils/logging"
	"provolx/provolx/utils/types"
)

const (
	histogramBins = 20
	topCategories = 10
)

type Kind int

const (
	Histogram Kind = iota + 1
	Bar
)

func (k Kind) String() string {
	switch k {
	case Histogram:
		return "histogram"
	case Bar:
		return "bar"
	default:
		return "unknown"
	}
}

// Plan is what will be drawn: a histogram of Values, or a bar chart of
// Counts labelled by Labels.
type Plan struct {
	Kind   Kind
	Column string
	Values []float64
	Labels []string
	Counts []float64
}

// Render returns the chart as a base64 PNG. ok is false when there is nothing
// to draw or drawing failed; callers can't tell the two apart.
func Render(columns []types.Column, sample []types.Row) (payload string, ok bool) {
	p, found := PlanFor(columns, sample)
	if !found {
		return "", false
	}

	png, err := rasterize(p)
	if err != nil {
		logging.ErrorLogger.Error("Error generating visualization",
			zap.String("kind", p.Kind.String()), zap.String("column", p.Column), zap.Error(err))
		return "", false
	}
	return base64.StdEncoding.EncodeToString(png), true
}

// PlanFor picks the first numeric column for a histogram, else the first
// categorical column for a top-10 bar chart.
func PlanFor(columns []types.Column, sample []types.Row) (Plan, bool) {
	if len(columns) == 0 || len(sample) == 0 {
		return Plan{}, false
	}

	names := make([]string, len(columns))
	for i, col := range columns {
		if _, present := col["name"]; present {
			names[i] = col.Name()
		} else {
			names[i] = fmt.Sprintf("Column_%d", i)
		}
	}

	cells := make([][]interface{}, len(columns))
	for _, row := range sample {
		for i := range columns {
			var v interface{}
			if i < len(row) {
				v = row[i]
			}
			cells[i] = append(cells[i], v)
		}
	}

	for i, col := range cells {
		if values, numeric := numericValues(col); numeric {
			return Plan{Kind: Histogram, Column: names[i], Values: values}, true
		}
	}
	for i, col := range cells {
		if isCategorical(col) {
			labels, counts := topValues(col, topCategories)
			return Plan{Kind: Bar, Column: names[i], Labels: labels, Counts: counts}, true
		}
	}
	return Plan{}, false
}

// numericValues reports whether every non-null cell is a number (and at least
// one is), returning those numbers.
func numericValues(col []interface{}) ([]float64, bool) {
	var out []float64
	for _, v := range col {
		if v == nil {
			continue
		}
		f, ok := toFloat(v)
		if !ok {
			return nil, false
		}
		if !math.IsNaN(f) {
			out = append(out, f)
		}
	}
	return out, len(out) > 0
}

func toFloat(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case int32:
		return float64(x), true
	default:
		return 0, false
	}
}

func isCategorical(col []interface{}) bool {
	nonNull, bools := 0, 0
	for _, v := range col {
		if v == nil {
			continue
		}
		nonNull++
		if _, ok := v.(bool); ok {
			bools++
		}
	}
	return nonNull > 0 && bools < nonNull
}

// topValues counts non-null values, most frequent first; ties keep first-seen order.
func topValues(col []interface{}, limit int) ([]string, []float64) {
	counts := make(map[string]int)
	var order []string
	for _, v := range col {
		if v == nil {
			continue
		}
		key := analysis.CellText(v)
		if counts[key] == 0 {
			order = append(order, key)
		}
		counts[key]++
	}

	sort.SliceStable(order, func(a, b int) bool {
		return counts[order[a]] > counts[order[b]]
	})
	if len(order) > limit {
		order = order[:limit]
	}

	values := make([]float64, len(order))
	for i, key := range order {
		values[i] = float64(counts[key])
	}
	return order, values
}

func rasterize(p Plan) (png []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("plot panic: %v", r)
		}
	}()

	pl := plot.New()
	fill := color.NRGBA{R: 31, G: 119, B: 180, A: 178}

	switch p.Kind {
	case Histogram:
		h, err := plotter.NewHist(plotter.Values(p.Values), histogramBins)
		if err != nil {
			return nil, err
		}
		h.FillColor = fill
		pl.Add(h)
		pl.Title.Text = "Distribution of " + p.Column
		pl.X.Label.Text = p.Column
		pl.Y.Label.Text = "Frequency"

	case Bar:
		bars, err := plotter.NewBarChart(plotter.Values(p.Counts), vg.Points(24))
		if err != nil {
			return nil, err
		}
		bars.Color = fill
		bars.LineStyle.Width = 0
		pl.Add(bars)
		pl.NominalX(p.Labels...)
		pl.X.Tick.Label.Rotation = math.Pi / 4
		pl.X.Tick.Label.XAlign = draw.XRight
		pl.X.Tick.Label.YAlign = draw.YCenter
		pl.Title.Text = fmt.Sprintf("Top 10 %s Values", p.Column)
		pl.X.Label.Text = p.Column
		pl.Y.Label.Text = "Count"

	default:
		return nil, fmt.Errorf("unknown chart kind %d", p.Kind)
	}

	wt, err := pl.WriterTo(10*vg.Inch, 6*vg.Inch, "png")
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
