// Copyright © 2023 OpenIM. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package view

import (
	"math"
	"strconv"
	"strings"

	"github.com/vison888/fxboard/pkg/common/model"
	"github.com/vison888/fxboard/pkg/util/digitutil"
)

const (
	ChartWidth  = 480
	ChartHeight = 240
	// chartPadding widens the y domain on both sides.
	chartPadding = 1000
)

type ChartPoint struct {
	Day       int
	Buy       float64
	Sell      float64
	Timestamp string
}

// NewChartPoints makes one point per history sample. Buy is 0.1% under the
// price and sell 0.1% over it.
func NewChartPoints(history *model.CurrencyPriceHistory) []ChartPoint {
	if history == nil {
		return nil
	}
	points := make([]ChartPoint, 0, len(history.Prices))
	for i, p := range history.Prices {
		points = append(points, ChartPoint{
			Day:       i + 1,
			Buy:       p.Price * 0.999,
			Sell:      p.Price * 1.001,
			Timestamp: p.Timestamp,
		})
	}
	return points
}

type Stats struct {
	BuyAverage  float64
	BuyMax      float64
	BuyMin      float64
	SellAverage float64
	SellMax     float64
	SellMin     float64
}

// NewStats reduces the points. No points gives all zeros.
func NewStats(points []ChartPoint) Stats {
	if len(points) == 0 {
		return Stats{}
	}
	s := Stats{
		BuyMax: math.Inf(-1), BuyMin: math.Inf(1),
		SellMax: math.Inf(-1), SellMin: math.Inf(1),
	}
	var buySum, sellSum float64
	for _, p := range points {
		buySum += p.Buy
		sellSum += p.Sell
		s.BuyMax = math.Max(s.BuyMax, p.Buy)
		s.BuyMin = math.Min(s.BuyMin, p.Buy)
		s.SellMax = math.Max(s.SellMax, p.Sell)
		s.SellMin = math.Min(s.SellMin, p.Sell)
	}
	n := float64(len(points))
	s.BuyAverage = math.Round(buySum / n)
	s.SellAverage = math.Round(sellSum / n)
	return s
}

type StatRow struct {
	Label string
	Buy   string
	Sell  string
}

func (s Stats) Rows() []StatRow {
	return []StatRow{
		{Label: TextAverage, Buy: digitutil.FormatPersian(s.BuyAverage), Sell: digitutil.FormatPersian(s.SellAverage)},
		{Label: TextMax, Buy: digitutil.FormatPersian(s.BuyMax), Sell: digitutil.FormatPersian(s.SellMax)},
		{Label: TextMin, Buy: digitutil.FormatPersian(s.BuyMin), Sell: digitutil.FormatPersian(s.SellMin)},
	}
}

// Chart is the buy series laid out for an SVG polyline.
type Chart struct {
	Width  int
	Height int
	Points string
	YMax   string
	YMin   string
	Empty  bool
}

func NewChart(points []ChartPoint) Chart {
	c := Chart{Width: ChartWidth, Height: ChartHeight, Empty: len(points) == 0}
	if c.Empty {
		return c
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		lo = math.Min(lo, p.Buy)
		hi = math.Max(hi, p.Buy)
	}
	lo -= chartPadding
	hi += chartPadding
	c.YMin = digitutil.FormatPersian(math.Round(lo))
	c.YMax = digitutil.FormatPersian(math.Round(hi))

	step := 0.0
	if len(points) > 1 {
		step = float64(ChartWidth) / float64(len(points)-1)
	}
	var b strings.Builder
	for i, p := range points {
		x := step * float64(i)
		if len(points) == 1 {
			x = float64(ChartWidth) / 2
		}
		y := float64(ChartHeight) - (p.Buy-lo)/(hi-lo)*float64(ChartHeight)
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.FormatFloat(x, 'f', 1, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(y, 'f', 1, 64))
	}
	c.Points = b.String()
	return c
}
