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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vison888/fxboard/pkg/common/model"
)

func TestCurrencyKeys(t *testing.T) {
	systemic := 1
	a := GetCurrencyFilteredKey(model.CurrencyFilter{Type: model.CurrencyTypeCrypto, IsSystemic: &systemic})
	b := GetCurrencyFilteredKey(model.CurrencyFilter{Type: model.CurrencyTypeCrypto, IsSystemic: &systemic})
	assert.Equal(t, a, b)
	assert.Equal(t, `currencies:filtered:{"type":"CRYPTO","is_systemic":1}`, a)

	assert.NotEqual(t, a, GetCurrencyFilteredKey(model.CurrencyFilter{Type: model.CurrencyTypeFiat}))
	assert.Equal(t, "currencies:list:{}", GetCurrencyListKey(model.CurrencyFilter{}))
	assert.Equal(t, "currencies:detail:7", GetCurrencyDetailKey(7))
	assert.Equal(t, "currencies:price-history:USD", GetCurrencyPriceHistoryKey("USD"))
	assert.Equal(t, `currencies:prices:{"type":"FIAT"}`, GetCurrencyPricesKey(model.CurrencyTypeFiat))

	for _, key := range []string{a, GetCurrencyDetailKey(1), GetCurrencyPricesKey(""), GetCurrencyPriceHistoryKey("BTC")} {
		assert.True(t, strings.HasPrefix(key, CurrencyKey+":"), key)
	}
}
