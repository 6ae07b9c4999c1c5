package charts

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"vehicle-insights/models"
)

// ErrNoData is returned when a chart has nothing to draw.
var ErrNoData = errors.New("no data to chart")

const (
	defaultWidth  = 1024
	defaultHeight = 512
	labelEvery    = 10
)

// Renderer draws chart datasets as PNG images.
type Renderer struct {
	Width  int
	Height int
}

// NewRenderer returns a Renderer with the default canvas size.
func NewRenderer() *Renderer {
	return &Renderer{Width: defaultWidth, Height: defaultHeight}
}

func titleStyle() chart.Style {
	return chart.Style{FontSize: 14, FontColor: drawing.ColorBlack}
}

func background() chart.Style {
	return chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}}
}

// Histogram renders a histogram as a bar per bin. Every tenth bin is labelled
// with its lower edge.
func (r *Renderer) Histogram(w io.Writer, h *models.Histogram, title string) error {
	if h == nil || h.Total() == 0 {
		return ErrNoData
	}

	bars := make([]chart.Value, len(h.Bins))
	peak := 0
	for i, b := range h.Bins {
		label := ""
		if i%labelEvery == 0 {
			label = strconv.FormatFloat(b.Lower, 'f', -1, 64)
		}
		bars[i] = chart.Value{
			Label: label,
			Value: float64(b.Count),
			Style: chart.Style{FillColor: chart.ColorBlue, StrokeColor: chart.ColorBlue, StrokeWidth: 1},
		}
		if b.Count > peak {
			peak = b.Count
		}
	}

	graph := chart.BarChart{
		Title:      title,
		TitleStyle: titleStyle(),
		Width:      r.Width,
		Height:     r.Height,
		Background: background(),
		BarWidth:   barWidthFor(r.Width, len(bars)),
		BarSpacing: 1,
		XAxis:      chart.Style{FontSize: 8},
		YAxis: chart.YAxis{
			Name:  "Vehicle Count",
			Range: &chart.ContinuousRange{Min: 0, Max: float64(peak)},
		},
		Bars: bars,
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("charts: render histogram: %w", err)
	}
	return nil
}

// ManufacturerModels renders one stacked bar per manufacturer, in row order, with
// one segment per model. A model keeps the same colour wherever it appears.
func (r *Renderer) ManufacturerModels(w io.Writer, rows []models.ManufacturerModelCount) error {
	if len(rows) == 0 {
		return ErrNoData
	}

	colors := make(map[string]drawing.Color)
	var bars []chart.StackedBar
	for _, row := range rows {
		if len(bars) == 0 || bars[len(bars)-1].Name != row.Manufacturer {
			bars = append(bars, chart.StackedBar{Name: row.Manufacturer, Width: 40})
		}
		c, ok := colors[row.Model]
		if !ok {
			c = chart.GetDefaultColor(len(colors))
			colors[row.Model] = c
		}
		last := &bars[len(bars)-1]
		last.Values = append(last.Values, chart.Value{
			Label: row.Model,
			Value: float64(row.Count),
			Style: chart.Style{FillColor: c, StrokeColor: drawing.ColorWhite, StrokeWidth: 1},
		})
	}

	width := r.Width
	if need := len(bars)*48 + 64; need > width {
		width = need
	}

	graph := chart.StackedBarChart{
		Title:      "Number of Vehicles by Manufacturer (Stacked by Model)",
		TitleStyle: titleStyle(),
		Width:      width,
		Height:     r.Height,
		Background: background(),
		BarSpacing: 8,
		XAxis:      chart.Style{FontSize: 8},
		Bars:       bars,
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("charts: render manufacturers: %w", err)
	}
	return nil
}

// PriceByModelYear renders a scatter plot with one dot series per condition.
func (r *Renderer) PriceByModelYear(w io.Writer, series []models.ScatterSeries) error {
	xr, yr := bounds(series)
	if xr == nil {
		return ErrNoData
	}

	var out []chart.Series
	for i, s := range series {
		if len(s.Points) == 0 {
			continue
		}
		xs := make([]float64, len(s.Points))
		ys := make([]float64, len(s.Points))
		for j, p := range s.Points {
			xs[j] = float64(p.ModelYear)
			ys[j] = p.Price
		}
		c := chart.GetDefaultColor(i)
		out = append(out, chart.ContinuousSeries{
			Name: s.Condition,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    2,
				DotColor:    c,
			},
			XValues: xs,
			YValues: ys,
		})
	}

	graph := chart.Chart{
		Title:      "Price vs. Model Year Colored by Condition",
		TitleStyle: titleStyle(),
		Width:      r.Width,
		Height:     r.Height,
		Background: background(),
		XAxis:      chart.XAxis{Name: "Model Year", Range: xr},
		YAxis:      chart.YAxis{Name: "Price", Range: yr},
		Series:     out,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("charts: render scatter: %w", err)
	}
	return nil
}

// bounds returns padded axis ranges over all points, or nils when there are none.
func bounds(series []models.ScatterSeries) (*chart.ContinuousRange, *chart.ContinuousRange) {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	n := 0
	for _, s := range series {
		for _, p := range s.Points {
			minX = math.Min(minX, float64(p.ModelYear))
			maxX = math.Max(maxX, float64(p.ModelYear))
			minY = math.Min(minY, p.Price)
			maxY = math.Max(maxY, p.Price)
			n++
		}
	}
	if n == 0 {
		return nil, nil
	}
	// go-chart rejects zero-width ranges.
	if maxX == minX {
		minX, maxX = minX-1, maxX+1
	}
	if maxY == minY {
		minY, maxY = minY-1, maxY+1
	}
	return &chart.ContinuousRange{Min: minX, Max: maxX}, &chart.ContinuousRange{Min: minY, Max: maxY}
}

// PriceByType renders box statistics as stacked bars: an invisible base up to the
// minimum, then the lower whisker, the two box halves and the upper whisker.
func (r *Renderer) PriceByType(w io.Writer, stats []models.BoxStats) error {
	if len(stats) == 0 {
		return ErrNoData
	}

	whisker := chart.Style{FillColor: drawing.ColorFromHex("c6dbef"), StrokeColor: drawing.ColorWhite, StrokeWidth: 1}
	box := chart.Style{FillColor: chart.ColorBlue, StrokeColor: drawing.ColorWhite, StrokeWidth: 1}
	hidden := chart.Style{FillColor: drawing.ColorTransparent, StrokeColor: drawing.ColorTransparent}

	bars := make([]chart.StackedBar, 0, len(stats))
	for _, s := range stats {
		bars = append(bars, chart.StackedBar{
			Name:  s.Category,
			Width: 40,
			Values: []chart.Value{
				{Value: s.Min, Style: hidden},
				{Value: s.Q1 - s.Min, Style: whisker},
				{Value: s.Median - s.Q1, Style: box},
				{Value: s.Q3 - s.Median, Style: box},
				{Value: s.Max - s.Q3, Style: whisker},
			},
		})
	}

	width := r.Width
	if need := len(bars)*48 + 64; need > width {
		width = need
	}

	graph := chart.StackedBarChart{
		Title:      "Price Distribution by Vehicle Type",
		TitleStyle: titleStyle(),
		Width:      width,
		Height:     r.Height,
		Background: background(),
		BarSpacing: 8,
		XAxis:      chart.Style{FontSize: 8},
		Bars:       bars,
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("charts: render price by type: %w", err)
	}
	return nil
}

// barWidthFor fits n bars with one pixel of spacing into the canvas width.
func barWidthFor(width, n int) int {
	if n == 0 {
		return 0
	}
	bw := (width-64)/n - 1
	if bw < 1 {
		return 1
	}
	return bw
}
