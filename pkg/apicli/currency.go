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
	"net/url"
	"strconv"

	"github.com/vison888/fxboard/pkg/common/model"
)

func NewCurrencyClient(cli *Client) *CurrencyClient {
	return &CurrencyClient{cli: cli}
}

type CurrencyClient struct {
	cli *Client
}

func (x *CurrencyClient) GetCurrencies(ctx context.Context) ([]model.Currency, error) {
	body, err := x.cli.get(ctx, "currencies", "currencies", nil, nil)
	if err != nil {
		return nil, err
	}
	return unwrapList[model.Currency](ctx, body), nil
}

func (x *CurrencyClient) GetFilteredCurrencies(ctx context.Context, filter model.CurrencyFilter) ([]model.Currency, error) {
	query := url.Values{}
	if filter.Type != "" {
		query.Set("type", string(filter.Type))
	}
	if filter.IsSystemic != nil {
		query.Set("is_systemic", strconv.Itoa(*filter.IsSystemic))
	}
	body, err := x.cli.get(ctx, "currencies/list", "currencies/list", query, nil)
	if err != nil {
		return nil, err
	}
	return unwrapList[model.Currency](ctx, body), nil
}

func (x *CurrencyClient) GetCurrency(ctx context.Context, id int) (*model.Currency, error) {
	body, err := x.cli.get(ctx, "currencies/{id}", "currencies/"+strconv.Itoa(id), nil, nil)
	if err != nil {
		return nil, err
	}
	return unwrapData[*model.Currency](body)
}

func (x *CurrencyClient) CreateCurrency(ctx context.Context, req *model.CreateCurrencyRequest) (*model.Currency, error) {
	form := &multipartForm{}
	form.set("name", req.Name)
	form.set("iso_code", req.IsoCode)
	form.set("symbol", req.Symbol)
	form.set("type", string(req.Type))
	form.set("has_wallet", strconv.Itoa(req.HasWallet))
	form.set("is_active", strconv.Itoa(req.IsActive))
	form.setNonEmpty("change_rate", req.ChangeRate)
	form.setNonEmpty("wallet_prefix", req.WalletPrefix)
	form.setNonEmpty("colors", req.Colors)
	form.file("logo", req.Logo)
	form.file("wallet_logo", req.WalletLogo)

	body, err := x.cli.postMultipart(ctx, "currencies", "currencies", form)
	if err != nil {
		return nil, err
	}
	return unwrapData[*model.Currency](body)
}

func (x *CurrencyClient) UpdateCurrency(ctx context.Context, req *model.UpdateCurrencyRequest) (*model.Currency, error) {
	form := &multipartForm{}
	form.setPtr("name", req.Name)
	form.setPtr("iso_code", req.IsoCode)
	form.setPtr("symbol", req.Symbol)
	if req.Type != nil {
		form.setNonEmpty("type", string(*req.Type))
	}
	if req.HasWallet != nil {
		form.set("has_wallet", strconv.Itoa(*req.HasWallet))
	}
	if req.IsActive != nil {
		form.set("is_active", strconv.Itoa(*req.IsActive))
	}
	form.setPtr("change_rate", req.ChangeRate)
	form.setPtr("wallet_prefix", req.WalletPrefix)
	form.setPtr("colors", req.Colors)
	form.file("logo", req.Logo)
	form.file("wallet_logo", req.WalletLogo)

	body, err := x.cli.postMultipart(ctx, "currencies/{id}", "currencies/"+strconv.Itoa(req.ID), form)
	if err != nil {
		return nil, err
	}
	return unwrapData[*model.Currency](body)
}

func (x *CurrencyClient) GetCurrencyPrices(ctx context.Context, currencyType model.CurrencyType) ([]model.CurrencyPrice, error) {
	query := url.Values{}
	if currencyType != "" {
		query.Set("type", string(currencyType))
	}
	body, err := x.cli.get(ctx, "currencies/prices", "currencies/prices", query, x.cli.languageHeader())
	if err != nil {
		return nil, err
	}
	return unwrapData[[]model.CurrencyPrice](body)
}

func (x *CurrencyClient) GetCurrencyPriceHistory(ctx context.Context, code string) (*model.CurrencyPriceHistory, error) {
	body, err := x.cli.get(ctx, "currencies/{code}/price-history", "currencies/"+url.PathEscape(code)+"/price-history", nil, x.cli.languageHeader())
	if err != nil {
		return nil, err
	}
	return unwrapData[*model.CurrencyPriceHistory](body)
}
