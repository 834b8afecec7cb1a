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
	"math/big"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vison888/fxboard/pkg/common/model"
	"github.com/vison888/fxboard/pkg/util/digitutil"
)

// LastUpdateLayout renders as HH:mm | yyyy/MM/dd.
const LastUpdateLayout = "15:04 | 2006/01/02"

var (
	buyFactor  = decimal.RequireFromString("0.999")
	sellFactor = decimal.RequireFromString("1.001")
	hundred    = decimal.NewFromInt(100)
)

// CurrencyRow is one line of the listing table.
type CurrencyRow struct {
	ID         int
	IsoCode    string
	Title      string
	BuyPrice   string
	SellPrice  string
	Change     string
	Positive   bool
	LastUpdate string
}

// MockPrice is placeholder display data until the API serves real buy/sell
// prices. It depends on id only, so a currency always shows the same
// numbers. Not suitable for anything but display.
type MockPrice struct {
	Base   decimal.Decimal
	Change decimal.Decimal // percent, -1 to +1
}

func NewMockPrice(id int) MockPrice {
	seed := int64(id) * 12345
	return MockPrice{
		Base:   decimal.NewFromInt(seed%40000 + 10000),
		Change: decimal.NewFromInt(seed%200 - 100).Div(hundred),
	}
}

func (p MockPrice) Buy() decimal.Decimal {
	return p.Base.Mul(buyFactor)
}

func (p MockPrice) Sell() decimal.Decimal {
	return p.Base.Mul(sellFactor)
}

func (p MockPrice) Positive() bool {
	return !p.Change.IsNegative()
}

// ChangeText is the change with its sign, one decimal and a percent sign.
// The float64 change is rounded on its exact binary expansion, half away
// from zero, so 0.95 (stored as 0.9499...) shows as +0.9%.
func (p MockPrice) ChangeText() string {
	c := p.Change.InexactFloat64()
	exact := decimal.RequireFromString(new(big.Float).SetFloat64(math.Abs(c)).Text('f', 64))
	s := exact.Round(1).StringFixed(1) + "%"
	if c < 0 {
		return "-" + s
	}
	return "+" + s
}

func NewCurrencyRows(currencies []model.Currency, now time.Time) []CurrencyRow {
	lastUpdate := digitutil.ToPersian(now.Format(LastUpdateLayout))
	rows := make([]CurrencyRow, 0, len(currencies))
	for _, c := range currencies {
		p := NewMockPrice(c.ID)
		rows = append(rows, CurrencyRow{
			ID:         c.ID,
			IsoCode:    c.IsoCode,
			Title:      c.Title,
			BuyPrice:   formatDecimal(p.Buy()),
			SellPrice:  formatDecimal(p.Sell()),
			Change:     digitutil.ToPersian(p.ChangeText()),
			Positive:   p.Positive(),
			LastUpdate: lastUpdate,
		})
	}
	return rows
}

func formatDecimal(d decimal.Decimal) string {
	return digitutil.FormatPersian(d.InexactFloat64())
}
