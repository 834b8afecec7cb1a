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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vison888/fxboard/pkg/common/model"
	"github.com/vison888/fxboard/pkg/util/digitutil"
)

func TestMockPrice(t *testing.T) {
	p := NewMockPrice(2)
	assert.Equal(t, "34690", p.Base.String())
	assert.Equal(t, "34655.31", p.Buy().String())
	assert.Equal(t, "34724.69", p.Sell().String())
	assert.False(t, p.Positive())
	assert.Equal(t, "-0.1%", p.ChangeText())

	p = NewMockPrice(1)
	assert.Equal(t, "22345", p.Base.String())
	assert.True(t, p.Positive())
	assert.Equal(t, "+0.5%", p.ChangeText())
}

func TestMockPriceChangeText(t *testing.T) {
	cases := map[int]string{
		1:  "+0.5%",
		2:  "-0.1%",
		5:  "+0.3%",
		7:  "-0.8%",
		11: "+0.9%",
		13: "-0.1%",
		17: "-0.3%",
		20: "+0.0%",
		23: "+0.3%",
		33: "+0.8%",
		47: "-0.8%",
		57: "-0.3%",
	}
	for id, want := range cases {
		assert.Equal(t, want, NewMockPrice(id).ChangeText(), "id %d", id)
	}
}

func TestCurrencyRowsAreStable(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 5, 0, 0, time.UTC)
	currencies := []model.Currency{{ID: 2, IsoCode: "USD", Title: "دلار"}, {ID: 7, IsoCode: "EUR", Title: "یورو"}}

	rows := NewCurrencyRows(currencies, now)
	require.Len(t, rows, 2)
	assert.Equal(t, rows, NewCurrencyRows(currencies, now))

	r := rows[0]
	assert.Equal(t, "USD", r.IsoCode)
	assert.Equal(t, "34,655.31", digitutil.ToASCII(r.BuyPrice))
	assert.Equal(t, "34,724.69", digitutil.ToASCII(r.SellPrice))
	assert.Equal(t, "-0.1%", digitutil.ToASCII(r.Change))
	assert.Equal(t, "۱۴:۰۵ | ۲۰۲۴/۰۳/۰۹", r.LastUpdate)
}

func TestPaginate(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i
	}

	page, p := Paginate(items, 1)
	assert.Equal(t, items[:10], page)
	assert.Equal(t, Pagination{Current: 1, Total: 3}, p)
	assert.False(t, p.HasPrev())
	assert.True(t, p.HasNext())
	assert.Equal(t, 1, p.Prev())

	page, p = Paginate(items, 3)
	assert.Equal(t, items[20:], page)
	assert.False(t, p.HasNext())
	assert.Equal(t, 3, p.Next())
	assert.Equal(t, []int{1, 2, 3}, p.Pages())

	_, p = Paginate(items, 0)
	assert.Equal(t, 1, p.Current)
	_, p = Paginate(items, 99)
	assert.Equal(t, 3, p.Current)

	page, p = Paginate([]int{}, 1)
	assert.Empty(t, page)
	assert.Equal(t, Pagination{Current: 1, Total: 1}, p)
}

func TestTotalPages(t *testing.T) {
	for n, want := range map[int]int{0: 1, 1: 1, 10: 1, 11: 2, 20: 2, 101: 11} {
		assert.Equal(t, want, TotalPages(n), "n=%d", n)
	}
}

func TestTabType(t *testing.T) {
	tab, typ := TabType("crypto")
	assert.Equal(t, TabCrypto, tab)
	assert.Equal(t, model.CurrencyTypeCrypto, typ)

	for _, v := range []string{"", "currency", "other"} {
		tab, typ = TabType(v)
		assert.Equal(t, TabCurrency, tab)
		assert.Equal(t, model.CurrencyTypeFiat, typ)
	}
}

func TestSearch(t *testing.T) {
	currencies := []model.Currency{
		{ID: 1, IsoCode: "USD", Title: "دلار"},
		{ID: 2, IsoCode: "BTC", Title: "بیت کوین"},
		{ID: 3, IsoCode: "USDT", Title: "تتر"},
	}
	assert.Len(t, Search(currencies, ""), 3)
	assert.Len(t, Search(currencies, "  "), 3)

	res := Search(currencies, "usd")
	require.Len(t, res, 2)
	assert.Equal(t, 1, res[0].ID)
	assert.Equal(t, 3, res[1].ID)

	res = Search(currencies, "کوین")
	require.Len(t, res, 1)
	assert.Equal(t, "BTC", res[0].IsoCode)

	assert.Empty(t, Search(currencies, "xyz"))
}

func TestStatsWithoutHistory(t *testing.T) {
	s := NewStats(NewChartPoints(&model.CurrencyPriceHistory{CurrencyCode: "USD"}))
	assert.Equal(t, Stats{}, s)
	for _, row := range s.Rows() {
		assert.Equal(t, "۰", row.Buy)
		assert.Equal(t, "۰", row.Sell)
	}
	assert.Equal(t, Stats{}, NewStats(NewChartPoints(nil)))
}

func TestStats(t *testing.T) {
	points := NewChartPoints(&model.CurrencyPriceHistory{Prices: []model.PricePoint{
		{Timestamp: "2024-01-01", Price: 1000},
		{Timestamp: "2024-01-02", Price: 3000},
	}})
	require.Len(t, points, 2)
	assert.Equal(t, 2, points[1].Day)

	s := NewStats(points)
	assert.InDelta(t, 1998, s.BuyAverage, 1e-6)
	assert.InDelta(t, 2997, s.BuyMax, 1e-6)
	assert.InDelta(t, 999, s.BuyMin, 1e-6)
	assert.InDelta(t, 2002, s.SellAverage, 1e-6)
	assert.InDelta(t, 3003, s.SellMax, 1e-6)
	assert.InDelta(t, 1001, s.SellMin, 1e-6)

	rows := s.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, TextAverage, rows[0].Label)
	assert.Equal(t, "1,998", digitutil.ToASCII(rows[0].Buy))
}

func TestChart(t *testing.T) {
	assert.True(t, NewChart(nil).Empty)

	c := NewChart([]ChartPoint{{Day: 1, Buy: 999}, {Day: 2, Buy: 1998}})
	assert.False(t, c.Empty)
	assert.Equal(t, "0.0,160.0 480.0,80.0", c.Points)
	assert.Equal(t, "2,998", digitutil.ToASCII(c.YMax))
	assert.Equal(t, "-1", digitutil.ToASCII(c.YMin))

	c = NewChart([]ChartPoint{{Day: 1, Buy: 5000}})
	assert.Equal(t, "240.0,120.0", c.Points)
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, TextRetryHint, ErrorMessage(""))
	assert.Equal(t, "boom", ErrorMessage("boom"))
}
