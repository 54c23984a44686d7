package service

import (
	"context"
	"math"
	"time"

	"github.com/okian/timeline/internal/domain/model"
	"github.com/okian/timeline/internal/domain/scale"
	"github.com/okian/timeline/pkg/logger"
	"github.com/okian/timeline/pkg/metrics"
)

// Wheel zooms around the timestamp under x. A negative deltaY zooms in.
// Zooming below the minimum time range is rejected and reports false.
func (c *Controller) Wheel(ctx context.Context, x int, deltaY float64) bool {
	plotWidth := float64(c.scales.Width - 2*c.settings.Padding)
	if plotWidth <= 0 {
		return c.reject(ctx, metrics.OpZoom, "no plot area")
	}

	from, to := float64(c.window.From), float64(c.window.To)
	timeScale := scale.NewLinear(0, plotWidth, from, to).Rounded()
	anchor := timeScale.Map(scale.Clamp(float64(x-c.settings.Padding), 0, plotWidth))

	factor := 1 - deltaY*c.settings.ZoomDeltaFactor
	if factor <= 0 {
		return c.reject(ctx, metrics.OpZoom, "zoom factor out of range")
	}

	// The window is checked in whole milliseconds, as it will be applied.
	nextFrom := int64(math.Round(anchor - (anchor-from)/factor))
	nextTo := int64(math.Round(anchor + (to-anchor)/factor))
	if time.Duration(nextTo-nextFrom)*time.Millisecond < c.settings.MinTimeRange {
		return c.reject(ctx, metrics.OpZoom, "below minimum time range")
	}

	return c.applyWindow(ctx, metrics.OpZoom, max(nextFrom, c.bounds[0]), min(nextTo, c.bounds[1]))
}

// Drag pans the window by the pointer distance since PointerDown. The window
// moves opposite to the pointer and stops at the dataset bounds.
func (c *Controller) Drag(ctx context.Context, x int) bool {
	if !c.dragging {
		return false
	}
	dx := x - c.dragX
	if dx == 0 {
		return false
	}

	shift := int64(math.Round(-float64(dx) * c.scales.X.DomainPerUnit()))
	span := c.dragWindow.Span()
	from, to := c.dragWindow.From+shift, c.dragWindow.To+shift
	if from < c.bounds[0] {
		from, to = c.bounds[0], c.bounds[0]+span
	}
	if to > c.bounds[1] {
		from, to = c.bounds[1]-span, c.bounds[1]
	}
	if from < c.bounds[0] {
		from = c.bounds[0]
	}

	return c.applyWindow(ctx, metrics.OpPan, from, to)
}

// applyWindow derives the index range for [from, to] and redraws. An empty
// range or an unchanged window is a no-op.
func (c *Controller) applyWindow(ctx context.Context, op string, from, to int64) bool {
	if to < from {
		return c.reject(ctx, op, "inverted range")
	}

	first, ok := c.view.FindFirst(func(e *model.Event) bool { return e.Timestamp >= from })
	if !ok {
		return c.reject(ctx, op, "no event after start")
	}
	last, ok := c.view.FindLast(func(e *model.Event) bool { return e.Timestamp <= to })
	if !ok || last.Index < first.Index {
		return c.reject(ctx, op, "no event in range")
	}

	next := model.Window{First: first.Index, Last: last.Index, From: from, To: to}
	if next == c.window {
		return false
	}

	c.window = next
	c.view.SetVisibleRange(next.First, next.Last)
	c.draw(ctx, op)
	c.reapply(ctx)

	metrics.RecordWindowChange(op, true)
	c.logger.Debug(ctx, "window changed",
		logger.String("op", op),
		logger.Int("first", next.First),
		logger.Int("last", next.Last),
		logger.Int64("span_ms", next.Span()),
	)
	return true
}

func (c *Controller) reject(ctx context.Context, op, reason string) bool {
	metrics.RecordWindowChange(op, false)
	c.logger.Debug(ctx, "window change rejected",
		logger.String("op", op),
		logger.String("reason", reason),
	)
	return false
}
