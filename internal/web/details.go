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

	"github.com/gin-gonic/gin"
	"github.com/vison888/fxboard/internal/web/view"
	"github.com/vison888/fxboard/pkg/common/model"
	"github.com/vison888/fxboard/pkg/util/digitutil"
	"golang.org/x/sync/errgroup"
)

type detailsPage struct {
	Code         string
	Title        string
	Error        string
	Chart        view.Chart
	Stats        []view.StatRow
	CurrentPrice string
}

// details renders the body of the details dialog. The page loads it
// asynchronously and shows a loading state until it arrives.
func (h *handler) details(c *gin.Context) {
	p := &detailsPage{Code: c.Param("code"), Title: c.Query("title")}
	if p.Title == "" {
		p.Title = p.Code
	}
	currencyType := model.CurrencyTypeFiat
	if c.Query("type") == string(model.CurrencyTypeCrypto) {
		currencyType = model.CurrencyTypeCrypto
	}

	var (
		history *model.CurrencyPriceHistory
		prices  []model.CurrencyPrice
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		history, err = h.currency.GetPriceHistory(ctx, p.Code)
		return err
	})
	g.Go(func() (err error) {
		prices, err = h.currency.GetPrices(ctx, currencyType)
		return err
	})
	if err := g.Wait(); err != nil {
		var status int
		p.Error, status = h.upstreamFailed(c, "load currency details failed", err)
		c.HTML(status, "details.html", p)
		return
	}

	points := view.NewChartPoints(history)
	p.Chart = view.NewChart(points)
	p.Stats = view.NewStats(points).Rows()
	for _, price := range prices {
		if price.CurrencyCode == p.Code {
			p.CurrentPrice = digitutil.FormatPersian(price.Price)
			break
		}
	}
	c.HTML(http.StatusOK, "details.html", p)
}
