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

package cachekey

import (
	"encoding/json"
	"strconv"

	"github.com/vison888/fxboard/pkg/common/model"
)

const (
	// CurrencyKey is the root every currency key is linked to, deleting it
	// invalidates all currency queries.
	CurrencyKey             = "currencies"
	CurrencyListKey         = "currencies:list:"
	CurrencyFilteredKey     = "currencies:filtered:"
	CurrencyDetailKey       = "currencies:detail:"
	CurrencyPricesKey       = "currencies:prices:"
	CurrencyPriceHistoryKey = "currencies:price-history:"
)

// params serializes a filter object. Struct fields keep declaration order and
// maps are sorted by encoding/json, so equal filters give equal keys.
func params(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(data)
}

func GetCurrencyListKey(filter model.CurrencyFilter) string {
	return CurrencyListKey + params(filter)
}

func GetCurrencyFilteredKey(filter model.CurrencyFilter) string {
	return CurrencyFilteredKey + params(filter)
}

func GetCurrencyDetailKey(id int) string {
	return CurrencyDetailKey + strconv.Itoa(id)
}

func GetCurrencyPricesKey(currencyType model.CurrencyType) string {
	return CurrencyPricesKey + params(model.CurrencyFilter{Type: currencyType})
}

func GetCurrencyPriceHistoryKey(code string) string {
	return CurrencyPriceHistoryKey + code
}
