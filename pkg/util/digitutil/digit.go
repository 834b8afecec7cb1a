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

// Package digitutil renders numbers for the Persian UI.
package digitutil

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const persianZero = '۰'

// ToPersian replaces every ASCII digit in s with its Persian glyph. All other
// runes are kept as is.
func ToPersian(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return persianZero + (r - '0')
		}
		return r
	}, s)
}

// ToASCII is the inverse of ToPersian.
func ToASCII(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= persianZero && r <= persianZero+9 {
			return '0' + (r - persianZero)
		}
		return r
	}, s)
}

var printer = message.NewPrinter(language.English)

// FormatNumber groups thousands and keeps at most three fraction digits.
func FormatNumber(v float64) string {
	return printer.Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
}

// FormatPersian is FormatNumber with Persian digits.
func FormatPersian(v float64) string {
	return ToPersian(FormatNumber(v))
}
