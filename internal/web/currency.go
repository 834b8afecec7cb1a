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
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/openimsdk/tools/log"
	"github.com/vison888/fxboard/internal/web/view"
	"github.com/vison888/fxboard/pkg/common/model"
)

type currencyForm struct {
	Edit   bool
	Action string
	Error  string

	ID           int
	Name         string
	IsoCode      string
	Symbol       string
	Type         model.CurrencyType
	HasWallet    bool
	IsActive     bool
	ChangeRate   string
	WalletPrefix string
	Colors       string
}

func (f *currencyForm) Types() []model.CurrencyType {
	return []model.CurrencyType{model.CurrencyTypeFiat, model.CurrencyTypeCrypto}
}

func formType(s string) model.CurrencyType {
	if s == string(model.CurrencyTypeCrypto) {
		return model.CurrencyTypeCrypto
	}
	return model.CurrencyTypeFiat
}

func tabOf(t model.CurrencyType) string {
	if t == model.CurrencyTypeCrypto {
		return view.TabCrypto
	}
	return view.TabCurrency
}

// savedURL opens the saved currency on its tab.
func savedURL(t model.CurrencyType, id int) string {
	v := url.Values{}
	v.Set("tab", tabOf(t))
	if id > 0 {
		v.Set("selected", strconv.Itoa(id))
	}
	return "/?" + v.Encode()
}

func updateAction(code string, id int) string {
	return "/currencies/" + url.PathEscape(code) + "?" + url.Values{"id": {strconv.Itoa(id)}}.Encode()
}

func (h *handler) newCurrency(c *gin.Context) {
	c.HTML(http.StatusOK, "currency_form.html", &currencyForm{
		Action:   "/currencies",
		Type:     formType(c.Query("type")),
		IsActive: true,
	})
}

func (h *handler) createCurrency(c *gin.Context) {
	ctx := c.Request.Context()
	var req model.CreateCurrencyRequest
	bindErr := c.ShouldBind(&req)
	form := &currencyForm{
		Action:       "/currencies",
		Name:         req.Name,
		IsoCode:      req.IsoCode,
		Symbol:       req.Symbol,
		Type:         formType(string(req.Type)),
		HasWallet:    req.HasWallet == 1,
		IsActive:     req.IsActive == 1,
		ChangeRate:   req.ChangeRate,
		WalletPrefix: req.WalletPrefix,
		Colors:       req.Colors,
	}
	if bindErr != nil {
		log.ZWarn(ctx, "create currency bind failed", bindErr)
		form.Error = view.TextInvalidRequest
		c.HTML(http.StatusBadRequest, "currency_form.html", form)
		return
	}

	created, err := h.currency.CreateCurrency(ctx, &req)
	if err != nil {
		var status int
		form.Error, status = h.upstreamFailed(c, "CreateCurrency failed", err)
		c.HTML(status, "currency_form.html", form)
		return
	}
	c.Redirect(http.StatusSeeOther, savedURL(req.Type, created.ID))
}

func (h *handler) editCurrency(c *gin.Context) {
	ctx := c.Request.Context()
	id, _ := strconv.Atoi(c.Query("id"))
	form := &currencyForm{
		Edit:    true,
		ID:      id,
		IsoCode: c.Param("code"),
		Action:  updateAction(c.Param("code"), id),
		Type:    formType(c.Query("type")),
	}

	cur, err := h.currency.GetCurrency(ctx, id)
	if err != nil {
		status := http.StatusBadRequest
		if id > 0 {
			form.Error, status = h.upstreamFailed(c, "GetCurrency failed", err)
		} else {
			form.Error = view.TextInvalidRequest
		}
		c.HTML(status, "currency_form.html", form)
		return
	}

	form.Name = cur.Title
	form.IsoCode = cur.IsoCode
	form.Symbol = cur.Symbol
	form.IsActive = true
	if colors, err := json.Marshal(cur.Colors); err == nil {
		form.Colors = string(colors)
	}
	c.HTML(http.StatusOK, "currency_form.html", form)
}

func (h *handler) updateCurrency(c *gin.Context) {
	ctx := c.Request.Context()
	id, _ := strconv.Atoi(c.Query("id"))
	var req model.UpdateCurrencyRequest
	bindErr := c.ShouldBind(&req)
	req.ID = id

	form := &currencyForm{Edit: true, ID: id, IsoCode: c.Param("code"), Action: updateAction(c.Param("code"), id)}
	fillUpdateForm(form, &req)
	if bindErr != nil || id <= 0 {
		log.ZWarn(ctx, "update currency bind failed", bindErr, "id", id)
		form.Error = view.TextInvalidRequest
		c.HTML(http.StatusBadRequest, "currency_form.html", form)
		return
	}

	updated, err := h.currency.UpdateCurrency(ctx, &req)
	if err != nil {
		var status int
		form.Error, status = h.upstreamFailed(c, "UpdateCurrency failed", err)
		c.HTML(status, "currency_form.html", form)
		return
	}
	c.Redirect(http.StatusSeeOther, savedURL(form.Type, updated.ID))
}

func fillUpdateForm(form *currencyForm, req *model.UpdateCurrencyRequest) {
	str := func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	}
	form.Name = str(req.Name)
	if req.IsoCode != nil {
		form.IsoCode = *req.IsoCode
	}
	form.Symbol = str(req.Symbol)
	form.Type = model.CurrencyTypeFiat
	if req.Type != nil {
		form.Type = formType(string(*req.Type))
	}
	form.HasWallet = req.HasWallet != nil && *req.HasWallet == 1
	form.IsActive = req.IsActive != nil && *req.IsActive == 1
	form.ChangeRate = str(req.ChangeRate)
	form.WalletPrefix = str(req.WalletPrefix)
	form.Colors = str(req.Colors)
}
