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

package digitutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToPersian(t *testing.T) {
	assert.Equal(t, "۰۱۲۳۴۵۶۷۸۹", ToPersian("0123456789"))
	assert.Equal(t, "۱۲:۳۰ | ۱۴۰۳/۰۱/۰۲", ToPersian("12:30 | 1403/01/02"))
	assert.Equal(t, "USD", ToPersian("USD"))
	assert.Equal(t, "", ToPersian(""))
	assert.Equal(t, "+۲.۵%", ToPersian("+2.5%"))
}

func TestToASCII(t *testing.T) {
	assert.Equal(t, "0123456789", ToASCII(ToPersian("0123456789")))
	assert.Equal(t, "abc", ToASCII("abc"))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "10,000", FormatNumber(10000))
	assert.Equal(t, "1,234,567.5", FormatNumber(1234567.5))
	assert.Equal(t, "0", FormatNumber(0))
	assert.Equal(t, "۱۰,۰۰۰", FormatPersian(10000))
}
