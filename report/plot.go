// SPDX-License-Identifier: MIT
// Package: itemnet/report
//
// plot.go — PNG plot of standardized centralities.

package report

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/katalvlaran/itemnet/centrality"
	"github.com/katalvlaran/itemnet/pipeline"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// ErrNoCentrality indicates a result without a centrality section.
var ErrNoCentrality = errors.New("report: no centrality to plot")

// Plot geometry in pixels.
const (
	plotLabelWidth = 260
	plotPanelWidth = 200
	plotRowHeight  = 22
	plotHeader     = 40
	plotMargin     = 16
)

// PlotCentrality draws one panel per index with items as rows and z-scores
// on a shared horizontal scale, points joined top to bottom.
//
// Errors: ErrNoCentrality; font or encoding failures.
func PlotCentrality(w io.Writer, res *pipeline.Result) error {
	if res.Centrality == nil {
		return ErrNoCentrality
	}
	phrases, err := centralityPhrases(res)
	if err != nil {
		return err
	}
	face, err := plotFace(12)
	if err != nil {
		return err
	}

	rep := res.Centrality
	n := len(rep.Items)
	width := plotLabelWidth + centrality.NumIndices*plotPanelWidth + plotMargin
	height := plotHeader + n*plotRowHeight + plotMargin
	limit := zLimit(rep)

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetFontFace(face)

	rowY := func(j int) float64 { return float64(plotHeader + j*plotRowHeight + plotRowHeight/2) }
	dc.SetRGB(0.1, 0.1, 0.1)
	for j, p := range phrases {
		dc.DrawStringAnchored(shorten(p, 36), plotLabelWidth-8, rowY(j), 1, 0.5)
	}

	for p, k := range centrality.Indices {
		left := float64(plotLabelWidth + p*plotPanelWidth)
		inner := float64(plotPanelWidth - 2*plotMargin)
		x := func(z float64) float64 { return left + plotMargin + (z+limit)/(2*limit)*inner }

		dc.SetRGB(0.1, 0.1, 0.1)
		dc.DrawStringAnchored(k.String(), left+float64(plotPanelWidth)/2, plotHeader/2, 0.5, 0.5)

		dc.SetRGB(0.85, 0.85, 0.85)
		dc.SetLineWidth(1)
		dc.DrawRectangle(left+plotMargin, plotHeader, inner, float64(n*plotRowHeight))
		dc.Stroke()
		dc.SetDash(3, 3)
		dc.DrawLine(x(0), plotHeader, x(0), float64(plotHeader+n*plotRowHeight))
		dc.Stroke()
		dc.SetDash()

		dc.SetRGB(0.16, 0.36, 0.62)
		dc.SetLineWidth(1.5)
		for j, it := range rep.Items {
			if j == 0 {
				dc.MoveTo(x(it.Z[k]), rowY(j))
			} else {
				dc.LineTo(x(it.Z[k]), rowY(j))
			}
		}
		dc.Stroke()
		for j, it := range rep.Items {
			dc.DrawCircle(x(it.Z[k]), rowY(j), 3.5)
			dc.Fill()
		}
	}

	if err = dc.EncodePNG(w); err != nil {
		return fmt.Errorf("report: png: %w", err)
	}
	return nil
}

// zLimit is the symmetric axis bound: the largest |z| rounded up, at least 1.
func zLimit(rep *centrality.Report) float64 {
	m := 1.0
	for _, it := range rep.Items {
		for _, z := range it.Z {
			m = math.Max(m, math.Abs(z))
		}
	}
	return math.Ceil(m)
}

func plotFace(size float64) (font.Face, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("report: font: %w", err)
	}
	return truetype.NewFace(f, &truetype.Options{Size: size}), nil
}
