// Copyright 2022-2023
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package heatmap renders correlation matrices to PNG images with a
// blue-white-red diverging color scale. NaN cells are drawn gray. The
// renderer uses a builtin 5x7 bitmap font so images need no font files.
package heatmap

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/penny-vault/pv-correlate/correlation"
)

// ErrEmptyMatrix indicates a render request for a matrix with no assets
var ErrEmptyMatrix = errors.New("no assets to render")

// Scale selects how coefficient values map onto the color ramp
type Scale int

const (
	// ScaleCorrelation maps [-1, 1] onto blue-white-red
	ScaleCorrelation Scale = iota
	// ScaleDifference maps [-2, 2] onto blue-white-red; matrix differences
	// range twice as wide as raw coefficients
	ScaleDifference
)

// Render draws the matrix as a heatmap and writes PNG bytes to out
func Render(out io.Writer, m *correlation.Matrix, scale Scale) error {
	if m == nil || m.Dim() == 0 {
		return ErrEmptyMatrix
	}
	size := m.Dim()
	glyphScale := 1
	glyphWidth := fontWidth * glyphScale
	glyphHeight := fontHeight * glyphScale
	spacing := fontSpacing * glyphScale

	valueChars := 5
	valueWidth := textWidth(valueChars, glyphScale)
	cellWidth := valueWidth + 6
	cellHeight := glyphHeight + 6

	leftMargin := labelMaxLen*(glyphWidth+spacing) + 8
	topMargin := labelMaxLen*(glyphHeight+spacing) + 8

	width := leftMargin + cellWidth*size + 2
	height := topMargin + cellHeight*size + 2

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	fillRect(img, image.Rect(0, 0, width, height), color.RGBA{255, 255, 255, 255})

	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			val := m.At(i, j)
			cellColor := cellColorFor(val, scale)
			x0 := leftMargin + j*cellWidth
			y0 := topMargin + i*cellHeight
			fillRect(img, image.Rect(x0, y0, x0+cellWidth, y0+cellHeight), cellColor)

			text := formatCoeff(val)
			textW := textWidth(len(text), glyphScale)
			textX := x0 + (cellWidth-textW)/2
			textY := y0 + (cellHeight-glyphHeight)/2
			drawString(img, textX, textY, text, textColorFor(cellColor), glyphScale)
		}
	}

	gridColor := color.RGBA{220, 220, 220, 255}
	for i := 0; i <= size; i++ {
		y := topMargin + i*cellHeight
		fillRect(img, image.Rect(leftMargin, y, leftMargin+cellWidth*size, y+1), gridColor)
	}
	for j := 0; j <= size; j++ {
		x := leftMargin + j*cellWidth
		fillRect(img, image.Rect(x, topMargin, x+1, topMargin+cellHeight*size), gridColor)
	}

	for i, name := range m.Assets {
		label := normalizeLabel(name, labelMaxLen)
		textW := textWidth(len(label), glyphScale)
		x := leftMargin - textW - 4
		y := topMargin + i*cellHeight + (cellHeight-glyphHeight)/2
		drawString(img, x, y, label, color.RGBA{0, 0, 0, 255}, glyphScale)
	}

	for j, name := range m.Assets {
		label := normalizeLabel(name, labelMaxLen)
		labelHeight := textHeight(len(label), glyphScale)
		x := leftMargin + j*cellWidth + (cellWidth-glyphWidth)/2
		y := topMargin - labelHeight - 2
		if y < 2 {
			y = 2
		}
		drawStringVertical(img, x, y, label, color.RGBA{0, 0, 0, 255}, glyphScale)
	}

	return png.Encode(out, img)
}

// Encode renders the matrix and returns the PNG bytes
func Encode(m *correlation.Matrix, scale Scale) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, m, scale); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func cellColorFor(val float64, scale Scale) color.RGBA {
	if scale == ScaleDifference {
		val /= 2
	}
	return correlationColor(val)
}

func formatCoeff(val float64) string {
	if math.IsNaN(val) {
		return "NaN"
	}
	if math.Abs(val) < 0.005 {
		val = 0
	}
	return fmt.Sprintf("%.2f", val)
}

func correlationColor(val float64) color.RGBA {
	if math.IsNaN(val) {
		return color.RGBA{200, 200, 200, 255}
	}
	if val < -1 {
		val = -1
	}
	if val > 1 {
		val = 1
	}
	t := (val + 1) / 2
	blue := color.RGBA{46, 107, 197, 255}
	red := color.RGBA{208, 65, 60, 255}
	white := color.RGBA{255, 255, 255, 255}
	if t < 0.5 {
		return blendColor(blue, white, t/0.5)
	}
	return blendColor(white, red, (t-0.5)/0.5)
}

func blendColor(a, b color.RGBA, t float64) color.RGBA {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return color.RGBA{
		R: uint8(float64(a.R) + (float64(b.R)-float64(a.R))*t),
		G: uint8(float64(a.G) + (float64(b.G)-float64(a.G))*t),
		B: uint8(float64(a.B) + (float64(b.B)-float64(a.B))*t),
		A: 255,
	}
}

func textColorFor(bg color.RGBA) color.RGBA {
	luma := 0.299*float64(bg.R) + 0.587*float64(bg.G) + 0.114*float64(bg.B)
	if luma < 128 {
		return color.RGBA{255, 255, 255, 255}
	}
	return color.RGBA{0, 0, 0, 255}
}

func fillRect(img *image.RGBA, rect image.Rectangle, c color.RGBA) {
	draw.Draw(img, rect, &image.Uniform{C: c}, image.Point{}, draw.Src)
}
