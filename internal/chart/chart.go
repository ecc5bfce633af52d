// Package chart keeps the level-2 price history series and draws it as a
// terminal line chart.
package chart

import (
	"fmt"
	"math"
	"sync"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/linechart"
	"github.com/charmbracelet/lipgloss"
)

const (
	DefaultWidth  = 60
	DefaultHeight = 12
)

// PriceChart holds one labelled data series. Set replaces the series,
// Update redraws it.
type PriceChart struct {
	mu       sync.RWMutex
	labels   []string
	data     []float64
	width    int
	height   int
	view     string
	revision int
	style    lipgloss.Style
}

// NewPriceChart creates an empty chart of the given size in cells.
func NewPriceChart(width, height int) *PriceChart {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &PriceChart{
		width:  width,
		height: height,
		style:  lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	}
}

// Set replaces the label and data sequences. It does not redraw.
func (c *PriceChart) Set(labels []string, data []float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.labels = append([]string(nil), labels...)
	c.data = append([]float64(nil), data...)
}

// Labels returns a copy of the label sequence.
func (c *PriceChart) Labels() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.labels...)
}

// Data returns a copy of the data sequence.
func (c *PriceChart) Data() []float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]float64(nil), c.data...)
}

// Revision counts redraws.
func (c *PriceChart) Revision() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.revision
}

// Resize changes the drawing area and redraws.
func (c *PriceChart) Resize(width, height int) {
	c.mu.Lock()
	if width > 0 {
		c.width = width
	}
	if height > 0 {
		c.height = height
	}
	c.mu.Unlock()
	c.Update()
}

// Update redraws the chart from the current series.
func (c *PriceChart) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view = c.draw()
	c.revision++
}

// View returns the last drawing.
func (c *PriceChart) View() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.view
}

func (c *PriceChart) draw() string {
	if len(c.data) == 0 {
		return ""
	}
	minY, maxY, margin := priceRange(c.data)
	maxX := float64(len(c.data) - 1)
	if maxX < 1 {
		maxX = 1
	}
	labels := c.labels

	xLabel := func(_ int, v float64) string {
		i := int(math.Round(v))
		if i < 0 || i >= len(labels) {
			return ""
		}
		return labels[i]
	}
	yLabel := func(_ int, v float64) string {
		return fmt.Sprintf("$%.2f", v)
	}

	lc := linechart.New(c.width, c.height,
		0, maxX,
		minY-margin, maxY+margin,
		linechart.WithXYSteps(4, 4),
		linechart.WithXLabelFormatter(xLabel),
		linechart.WithYLabelFormatter(yLabel),
		linechart.WithStyles(lipgloss.Style{}, lipgloss.Style{}, c.style),
	)
	if len(c.data) == 1 {
		p := canvas.Float64Point{X: 0, Y: c.data[0]}
		lc.DrawBrailleLineWithStyle(p, p, c.style)
	}
	for i := 0; i < len(c.data)-1; i++ {
		p1 := canvas.Float64Point{X: float64(i), Y: c.data[i]}
		p2 := canvas.Float64Point{X: float64(i + 1), Y: c.data[i+1]}
		lc.DrawBrailleLineWithStyle(p1, p2, c.style)
	}
	lc.DrawXYAxisAndLabel()
	return lc.View()
}

// priceRange returns the bounds of prices and a vertical margin so a flat
// series still gets a visible band.
func priceRange(prices []float64) (float64, float64, float64) {
	lo, hi := prices[0], prices[0]
	for _, p := range prices {
		lo = math.Min(lo, p)
		hi = math.Max(hi, p)
	}
	spread := hi - lo
	if spread < 0.0001 {
		margin := math.Abs(lo) * 0.005
		if margin == 0 {
			margin = 1
		}
		return lo, hi, margin
	}
	return lo, hi, spread * 0.1
}
