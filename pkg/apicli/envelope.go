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

package apicli

import (
	"context"
	"encoding/json"

	"github.com/openimsdk/tools/errs"
	"github.com/openimsdk/tools/log"
	"github.com/tidwall/gjson"
	"github.com/vison888/fxboard/pkg/common/servererrs"
)

// ListStrategy finds the JSON array holding a collection inside a response
// body. ok is false when the body does not have the shape it looks for.
type ListStrategy func(body []byte) (raw []byte, ok bool)

// ListStrategies are tried in order, the first match wins. A body matching
// none of them is an empty collection.
var ListStrategies = []ListStrategy{CurrencyListField, DataArray, BodyArray}

var emptyArray = []byte("[]")

// truthy follows the usual JSON-ish notion: null, false, 0 and "" are not.
func truthy(r gjson.Result) bool {
	switch r.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.Number:
		return r.Num != 0
	case gjson.String:
		return r.Str != ""
	default:
		return r.Exists()
	}
}

// CurrencyListField matches {"data": {"currency_list": [...]}}. A truthy
// currency_list that is not an array yields an empty collection.
func CurrencyListField(body []byte) ([]byte, bool) {
	r := gjson.GetBytes(body, "data.currency_list")
	if !r.Exists() || !truthy(r) {
		return nil, false
	}
	if !r.IsArray() {
		return emptyArray, true
	}
	return []byte(r.Raw), true
}

// DataArray matches {"data": [...]}.
func DataArray(body []byte) ([]byte, bool) {
	r := gjson.GetBytes(body, "data")
	if !r.IsArray() {
		return nil, false
	}
	return []byte(r.Raw), true
}

// BodyArray matches a bare [...] body.
func BodyArray(body []byte) ([]byte, bool) {
	r := gjson.ParseBytes(body)
	if !r.IsArray() {
		return nil, false
	}
	return []byte(r.Raw), true
}

// unwrapList never fails: elements that do not decode into T are skipped
// and logged, a body without a matching array is an empty collection.
func unwrapList[T any](ctx context.Context, body []byte, strategies ...ListStrategy) []T {
	if len(strategies) == 0 {
		strategies = ListStrategies
	}
	for _, strategy := range strategies {
		raw, ok := strategy(body)
		if !ok {
			continue
		}
		out := make([]T, 0)
		var skipped int
		gjson.ParseBytes(raw).ForEach(func(_, elem gjson.Result) bool {
			var t T
			if err := json.Unmarshal([]byte(elem.Raw), &t); err != nil {
				skipped++
				log.ZWarn(ctx, "skip list element", err, "element", elem.Raw)
				return true
			}
			out = append(out, t)
			return true
		})
		if skipped > 0 {
			log.ZWarn(ctx, "list had malformed elements", nil, "skipped", skipped, "kept", len(out))
		}
		return out
	}
	return []T{}
}

// unwrapData decodes the data field of an ApiResponse envelope.
func unwrapData[T any](body []byte) (T, error) {
	var t T
	if !gjson.ValidBytes(body) {
		return t, servererrs.ErrEnvelope.WrapMsg("response is not json")
	}
	data := gjson.GetBytes(body, "data")
	if !data.Exists() {
		return t, servererrs.ErrEnvelope.WrapMsg("response has no data field")
	}
	if err := json.Unmarshal([]byte(data.Raw), &t); err != nil {
		return t, errs.WrapMsg(err, "decode data failed")
	}
	return t, nil
}
