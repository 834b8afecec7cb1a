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

package model

import "mime/multipart"


type CurrencyType string

const (
	CurrencyTypeFiat   CurrencyType = "FIAT"
	CurrencyTypeCrypto CurrencyType = "CRYPTO"
)

type CurrencyColors struct {
	One   string `json:"one"`
	Two   string `json:"two"`
	Three string `json:"three"`
	Four  string `json:"four"`
	Five  string `json:"five"`
}

type Currency struct {
	ID      int            `json:"id"`
	Title   string         `json:"title"`
	Symbol  string         `json:"symbol"`
	IsoCode string         `json:"iso_code"`
	Image   string         `json:"image"`
	Colors  CurrencyColors `json:"colors"`
}

// CurrencyFilter selects the currencies returned by the list endpoint. Empty
// fields are not sent.
type CurrencyFilter struct {
	Type       CurrencyType `json:"type,omitempty"`
	IsSystemic *int         `json:"is_systemic,omitempty"`
}

type CurrencyPrice struct {
	CurrencyID       int      `json:"currency_id"`
	CurrencyCode     string   `json:"currency_code"`
	Price            float64  `json:"price"`
	Change24h        *float64 `json:"change_24h,omitempty"`
	ChangePercentage *float64 `json:"change_percentage,omitempty"`
}

type PricePoint struct {
	Timestamp string  `json:"timestamp"`
	Price     float64 `json:"price"`
}

type CurrencyPriceHistory struct {
	CurrencyCode string       `json:"currency_code"`
	Prices       []PricePoint `json:"prices"`
}

// CreateCurrencyRequest is sent as multipart/form-data.
type CreateCurrencyRequest struct {
	Name         string                `form:"name" binding:"required"`
	IsoCode      string                `form:"iso_code" binding:"required,max=10"`
	Symbol       string                `form:"symbol" binding:"required"`
	Type         CurrencyType          `form:"type" binding:"required,oneof=FIAT CRYPTO"`
	HasWallet    int                   `form:"has_wallet" binding:"oneof=0 1"`
	IsActive     int                   `form:"is_active" binding:"oneof=0 1"`
	ChangeRate   string                `form:"change_rate"`
	WalletPrefix string                `form:"wallet_prefix"`
	Colors       string                `form:"colors"`
	Logo         *multipart.FileHeader `form:"logo"`
	WalletLogo   *multipart.FileHeader `form:"wallet_logo"`
}

// UpdateCurrencyRequest only sends the fields that are set.
type UpdateCurrencyRequest struct {
	ID           int                   `form:"-"`
	Name         *string               `form:"name"`
	IsoCode      *string               `form:"iso_code"`
	Symbol       *string               `form:"symbol"`
	Type         *CurrencyType         `form:"type" binding:"omitempty,oneof=FIAT CRYPTO"`
	HasWallet    *int                  `form:"has_wallet" binding:"omitempty,oneof=0 1"`
	IsActive     *int                  `form:"is_active" binding:"omitempty,oneof=0 1"`
	ChangeRate   *string               `form:"change_rate"`
	WalletPrefix *string               `form:"wallet_prefix"`
	Colors       *string               `form:"colors"`
	Logo         *multipart.FileHeader `form:"logo"`
	WalletLogo   *multipart.FileHeader `form:"wallet_logo"`
}
