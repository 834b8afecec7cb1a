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

package web

import (
	"context"

	"github.com/vison888/fxboard/pkg/common/model"
)

// CurrencyService is the part of apicache.CurrencyLocalCache the pages use.
type CurrencyService interface {
	GetCurrenciesByType(ctx context.Context, currencyType model.CurrencyType) ([]model.Currency, error)
	GetCurrency(ctx context.Context, id int) (*model.Currency, error)
	GetPrices(ctx context.Context, currencyType model.CurrencyType) ([]model.CurrencyPrice, error)
	GetPriceHistory(ctx context.Context, code string) (*model.CurrencyPriceHistory, error)
	CreateCurrency(ctx context.Context, req *model.CreateCurrencyRequest) (*model.Currency, error)
	UpdateCurrency(ctx context.Context, req *model.UpdateCurrencyRequest) (*model.Currency, error)
}

type UserService interface {
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	Logout(ctx context.Context)
}
