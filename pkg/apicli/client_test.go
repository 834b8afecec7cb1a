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
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vison888/fxboard/pkg/common/config"
	"github.com/vison888/fxboard/pkg/common/model"
	"github.com/vison888/fxboard/pkg/common/servererrs"
)

type memCredentials struct {
	lock    sync.Mutex
	token   string
	cleared bool
}

func (m *memCredentials) Token(ctx context.Context) string {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.token
}

func (m *memCredentials) Clear(ctx context.Context) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.token = ""
	m.cleared = true
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cli, err := NewClient(&config.Upstream{
		BaseURL:   srv.URL,
		APIPrefix: "/api/v3/",
		Version:   "1.0.0",
		DeviceID:  "pwa",
		Language:  "fa",
		Timeout:   10,
	})
	require.NoError(t, err)
	return cli
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestGetFilteredCurrencies(t *testing.T) {
	cli := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v3/currencies/list", r.URL.Path)
		assert.Equal(t, "CRYPTO", r.URL.Query().Get("type"))
		assert.Equal(t, "1", r.URL.Query().Get("is_systemic"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "1.0.0", r.Header.Get("Version"))
		assert.Equal(t, "pwa", r.Header.Get("device-id"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Empty(t, r.Header.Get("Language"))
		writeJSON(w, http.StatusOK, map[string]any{
			"data": map[string]any{"currency_list": []map[string]any{{"id": 1, "title": "Bitcoin", "iso_code": "BTC"}}},
		})
	})

	ctx := WithCredentials(context.Background(), &memCredentials{token: "tok"})
	systemic := 1
	list, err := NewCurrencyClient(cli).GetFilteredCurrencies(ctx, model.CurrencyFilter{Type: model.CurrencyTypeCrypto, IsSystemic: &systemic})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "BTC", list[0].IsoCode)
}

func TestNoCredentials(t *testing.T) {
	cli := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, []map[string]any{{"id": 1}})
	})
	list, err := NewCurrencyClient(cli).GetCurrencies(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestUnauthorizedClearsCredentials(t *testing.T) {
	cli := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "token expired"})
	})
	creds := &memCredentials{token: "tok"}
	ctx := WithCredentials(context.Background(), creds)

	_, err := NewCurrencyClient(cli).GetCurrencies(ctx)
	require.Error(t, err)
	assert.True(t, creds.cleared)
	assert.Empty(t, creds.Token(ctx))
	assert.Equal(t, http.StatusUnauthorized, StatusCode(err))
	assert.True(t, IsClientError(err))
	assert.True(t, errors.Is(err, servererrs.ErrUnauthorized))
	assert.Equal(t, "token expired", Message(err))
}

func TestServerError(t *testing.T) {
	cli := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	creds := &memCredentials{token: "tok"}
	_, err := NewCurrencyClient(cli).GetCurrencies(WithCredentials(context.Background(), creds))
	require.Error(t, err)
	assert.False(t, creds.cleared)
	assert.False(t, IsClientError(err))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(err))
	assert.True(t, errors.Is(err, servererrs.ErrUpstream))
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	cli, err := NewClient(&config.Upstream{BaseURL: srv.URL, APIPrefix: "/api/v3/"})
	require.NoError(t, err)

	_, err = NewCurrencyClient(cli).GetCurrencies(context.Background())
	var te *TransportError
	assert.True(t, errors.As(err, &te))
	assert.Equal(t, 0, StatusCode(err))
}

func TestPriceEndpoints(t *testing.T) {
	cli := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "fa", r.Header.Get("Language"))
		switch r.URL.Path {
		case "/api/v3/currencies/prices":
			assert.Equal(t, "FIAT", r.URL.Query().Get("type"))
			writeJSON(w, http.StatusOK, map[string]any{"data": []map[string]any{{"currency_id": 1, "currency_code": "USD", "price": 61000.5}}})
		case "/api/v3/currencies/USD/price-history":
			writeJSON(w, http.StatusOK, map[string]any{"data": map[string]any{
				"currency_code": "USD",
				"prices":        []map[string]any{{"timestamp": "2024-01-01T00:00:00Z", "price": 60000}},
			}})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})
	x := NewCurrencyClient(cli)

	prices, err := x.GetCurrencyPrices(context.Background(), model.CurrencyTypeFiat)
	require.NoError(t, err)
	require.Len(t, prices, 1)
	assert.Equal(t, 61000.5, prices[0].Price)

	history, err := x.GetCurrencyPriceHistory(context.Background(), "USD")
	require.NoError(t, err)
	assert.Len(t, history.Prices, 1)
}

func TestCreateCurrency(t *testing.T) {
	cli := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v3/currencies", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Dollar", r.FormValue("name"))
		assert.Equal(t, "USD", r.FormValue("iso_code"))
		assert.Equal(t, "FIAT", r.FormValue("type"))
		assert.Equal(t, "1", r.FormValue("has_wallet"))
		assert.Equal(t, "0", r.FormValue("is_active"))
		_, ok := r.MultipartForm.Value["change_rate"]
		assert.False(t, ok)
		writeJSON(w, http.StatusOK, map[string]any{"data": map[string]any{"id": 9, "title": "Dollar", "iso_code": "USD"}})
	})

	c, err := NewCurrencyClient(cli).CreateCurrency(context.Background(), &model.CreateCurrencyRequest{
		Name: "Dollar", IsoCode: "USD", Symbol: "$", Type: model.CurrencyTypeFiat, HasWallet: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 9, c.ID)
}

func TestUpdateCurrency(t *testing.T) {
	cli := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/currencies/9", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, []string{"Euro"}, r.MultipartForm.Value["name"])
		assert.Equal(t, []string{"0"}, r.MultipartForm.Value["is_active"])
		_, ok := r.MultipartForm.Value["iso_code"]
		assert.False(t, ok)
		writeJSON(w, http.StatusOK, map[string]any{"data": map[string]any{"id": 9, "title": "Euro"}})
	})

	name, inactive := "Euro", 0
	c, err := NewCurrencyClient(cli).UpdateCurrency(context.Background(), &model.UpdateCurrencyRequest{ID: 9, Name: &name, IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "Euro", c.Title)
}

func TestLogin(t *testing.T) {
	cli := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/user/login", r.URL.Path)
		var req model.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "+98", req.PhonePrefix)
		assert.Equal(t, "23141", req.FirebaseToken)
		writeJSON(w, http.StatusOK, map[string]any{"data": map[string]any{"token": "new-token"}})
	})

	resp, err := NewUserClient(cli).Login(context.Background(), &model.LoginRequest{PhonePrefix: "+98", Phone: "0936", Password: "p", FirebaseToken: "23141"})
	require.NoError(t, err)
	assert.Equal(t, "new-token", resp.Token)
}

func TestNewClientInvalidURL(t *testing.T) {
	_, err := NewClient(&config.Upstream{BaseURL: "not a url"})
	assert.Error(t, err)
}
