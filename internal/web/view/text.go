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

// Persian UI strings.
const (
	TextPageTitle       = "نرخ ارز"
	TextTabCrypto       = "رمز ارز"
	TextTabCurrency     = "ارز"
	TextSearch          = "جست و جو"
	TextNoCurrency      = "هیچ ارزی یافت نشد"
	TextNoCurrencyHint  = "در حال حاضر هیچ ارزی برای نمایش وجود ندارد"
	TextListError       = "خطا در بارگذاری ارزها"
	TextRetryHint       = "لطفاً دوباره تلاش کنید"
	TextLoading         = "در حال بارگذاری ارزها..."
	TextDetailsLoading  = "در حال بارگذاری داده‌های ارز..."
	TextDetailsError    = "خطا در بارگذاری داده‌های ارز"
	TextNoChartData     = "داده‌ای برای نمایش وجود ندارد"
	TextChangesOf30Days = "تغییرات 30 روز گذشته"
	TextAverage         = "میانگین"
	TextMax             = "حداکثر"
	TextMin             = "حداقل"
	TextBuy             = "خرید شما (ریال)"
	TextSell            = "فروش شما (ریال)"
	TextChange          = "تغییرات (24 ساعت)"
	TextLastUpdate      = "آخرین به‌روزرسانی"
	TextType            = "نوع"

	TextLogin          = "ورود به سیستم"
	TextLoggingIn      = "در حال ورود..."
	TextLoginError     = "خطا در ورود"
	TextLoginFailed    = "ورود ناموفق بود. لطفاً دوباره تلاش کنید."
	TextRetry          = "تلاش مجدد"
	TextLoginSuccess   = "ورود موفق"
	TextLoginRedirect  = "ورود موفقیت‌آمیز! در حال انتقال..."
	TextLogout         = "خروج"
	TextNewCurrency    = "ارز جدید"
	TextEditCurrency   = "ویرایش ارز"
	TextSave           = "ذخیره"
	TextSaveError      = "خطا در ذخیره ارز"
	TextInvalidRequest = "اطلاعات وارد شده معتبر نیست"
	TextCurrentPrice   = "قیمت فعلی"
	TextClose          = "بستن"
	TextPrev           = "قبلی"
	TextNext           = "بعدی"
)

// Texts exposes the strings to templates by name, without the Text prefix.
var Texts = map[string]string{
	"PageTitle":       TextPageTitle,
	"TabCrypto":       TextTabCrypto,
	"TabCurrency":     TextTabCurrency,
	"Search":          TextSearch,
	"NoCurrency":      TextNoCurrency,
	"NoCurrencyHint":  TextNoCurrencyHint,
	"ListError":       TextListError,
	"RetryHint":       TextRetryHint,
	"Loading":         TextLoading,
	"DetailsLoading":  TextDetailsLoading,
	"DetailsError":    TextDetailsError,
	"NoChartData":     TextNoChartData,
	"ChangesOf30Days": TextChangesOf30Days,
	"Average":         TextAverage,
	"Max":             TextMax,
	"Min":             TextMin,
	"Buy":             TextBuy,
	"Sell":            TextSell,
	"Change":          TextChange,
	"LastUpdate":      TextLastUpdate,
	"Type":            TextType,
	"Login":           TextLogin,
	"LoggingIn":       TextLoggingIn,
	"LoginError":      TextLoginError,
	"LoginFailed":     TextLoginFailed,
	"Retry":           TextRetry,
	"LoginSuccess":    TextLoginSuccess,
	"LoginRedirect":   TextLoginRedirect,
	"Logout":          TextLogout,
	"NewCurrency":     TextNewCurrency,
	"EditCurrency":    TextEditCurrency,
	"Save":            TextSave,
	"SaveError":       TextSaveError,
	"InvalidRequest":  TextInvalidRequest,
	"CurrentPrice":    TextCurrentPrice,
	"Close":           TextClose,
	"Prev":            TextPrev,
	"Next":            TextNext,
}

// T looks key up in Texts. An unknown key renders as itself.
func T(key string) string {
	if s, ok := Texts[key]; ok {
		return s
	}
	return key
}

// ErrorMessage is msg, or the generic retry hint when msg is empty.
func ErrorMessage(msg string) string {
	if msg == "" {
		return TextRetryHint
	}
	return msg
}
