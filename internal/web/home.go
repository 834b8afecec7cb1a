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
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/vison888/fxboard/internal/web/view"
	"github.com/vison888/fxboard/pkg/common/model"
)

type homePage struct {
	Tab        string
	Type       model.CurrencyType
	Query      string
	Rows       []view.CurrencyRow
	Pagination view.Pagination
	Error      string
	Empty      bool
	Selected   *view.CurrencyRow
	DetailsURL string
}

func (p *homePage) url(page, selected int) string {
	v := url.Values{}
	v.Set("tab", p.Tab)
	if p.Query != "" {
		v.Set("q", p.Query)
	}
	if page > 1 {
		v.Set("page", strconv.Itoa(page))
	}
	if selected > 0 {
		v.Set("selected", strconv.Itoa(selected))
	}
	return "/?" + v.Encode()
}

// PageURL links to page n, keeping tab and search.
func (p *homePage) PageURL(n int) string {
	return p.url(n, 0)
}

// SelectURL opens the details dialog for id on the current page.
func (p *homePage) SelectURL(id int) string {
	return p.url(p.Pagination.Current, id)
}

func (p *homePage) CloseURL() string {
	return p.url(p.Pagination.Current, 0)
}

func (p *homePage) TabURL(tab string) string {
	return "/?" + url.Values{"tab": {tab}}.Encode()
}

func detailsURL(row *view.CurrencyRow, currencyType model.CurrencyType) string {
	v := url.Values{}
	v.Set("type", string(currencyType))
	v.Set("title", row.Title)
	return "/currencies/" + url.PathEscape(row.IsoCode) + "/details?" + v.Encode()
}

// home is the listing page: ?tab=crypto|currency&q=&page=&selected=<id>.
func (h *handler) home(c *gin.Context) {
	ctx := c.Request.Context()
	p := &homePage{Query: c.Query("q")}
	p.Tab, p.Type = view.TabType(c.Query("tab"))
	page, _ := strconv.Atoi(c.Query("page"))
	selected, _ := strconv.Atoi(c.Query("selected"))

	currencies, err := h.currency.GetCurrenciesByType(ctx, p.Type)
	if err != nil {
		p.Error, _ = h.upstreamFailed(c, "GetCurrenciesByType failed", err)
		p.Pagination = view.Pagination{Current: 1, Total: 1}
		c.HTML(http.StatusOK, "home.html", p)
		return
	}

	rows := view.NewCurrencyRows(view.Search(currencies, p.Query), h.now())
	p.Empty = len(rows) == 0
	for i := range rows {
		if selected > 0 && rows[i].ID == selected {
			p.Selected = &rows[i]
			p.DetailsURL = detailsURL(p.Selected, p.Type)
			break
		}
	}
	p.Rows, p.Pagination = view.Paginate(rows, page)
	c.HTML(http.StatusOK, "home.html", p)
}
