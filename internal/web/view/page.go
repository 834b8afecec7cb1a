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
	"strings"

	"github.com/vison888/fxboard/pkg/common/model"
	"github.com/vison888/fxboard/pkg/util/digitutil"
)

const PageSize = 10

const (
	TabCrypto   = "crypto"
	TabCurrency = "currency"
)

// TabType maps the tab query value to the currency type it lists. Anything
// but "crypto" is the currency tab.
func TabType(tab string) (string, model.CurrencyType) {
	if tab == TabCrypto {
		return TabCrypto, model.CurrencyTypeCrypto
	}
	return TabCurrency, model.CurrencyTypeFiat
}

// TotalPages is ceil(n/PageSize), never less than 1.
func TotalPages(n int) int {
	if n <= 0 {
		return 1
	}
	return (n + PageSize - 1) / PageSize
}

type Pagination struct {
	Current int
	Total   int
}

func (p Pagination) HasPrev() bool { return p.Current > 1 }
func (p Pagination) HasNext() bool { return p.Current < p.Total }
func (p Pagination) Prev() int     { return max(p.Current-1, 1) }
func (p Pagination) Next() int     { return min(p.Current+1, p.Total) }

// Pages lists every page number, for the page buttons.
func (p Pagination) Pages() []int {
	pages := make([]int, p.Total)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}

// Paginate returns the rows of page, clamped to [1, TotalPages].
func Paginate[T any](items []T, page int) ([]T, Pagination) {
	p := Pagination{Current: page, Total: TotalPages(len(items))}
	if p.Current < 1 {
		p.Current = 1
	}
	if p.Current > p.Total {
		p.Current = p.Total
	}
	start := (p.Current - 1) * PageSize
	end := min(start+PageSize, len(items))
	if start >= end {
		return nil, p
	}
	return items[start:end], p
}

// Search keeps the currencies whose iso code or title contains q, ignoring
// case. Persian digits in q match ASCII ones.
func Search(currencies []model.Currency, q string) []model.Currency {
	q = strings.ToLower(strings.TrimSpace(digitutil.ToASCII(q)))
	if q == "" {
		return currencies
	}
	var res []model.Currency
	for _, c := range currencies {
		if strings.Contains(strings.ToLower(c.IsoCode), q) || strings.Contains(strings.ToLower(digitutil.ToASCII(c.Title)), q) {
			res = append(res, c)
		}
	}
	return res
}
