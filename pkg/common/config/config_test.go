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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(body), 0o644))
	return dir
}

func TestLoadDefaults(t *testing.T) {
	dir := writeConfig(t, "upstream:\n  baseURL: http://api.example.com\n")
	conf, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "http://api.example.com", conf.Upstream.BaseURL)
	assert.Equal(t, "/api/v3/", conf.Upstream.APIPrefix)
	assert.Equal(t, 10*time.Second, conf.Upstream.RequestTimeout())
	assert.Equal(t, "token", conf.Auth.CookieName)
	assert.Equal(t, 7*24*time.Hour, conf.Auth.MaxAge())
	assert.Equal(t, 5*time.Minute, conf.LocalCache.Currency.Fresh())
	assert.Equal(t, 10*time.Minute, conf.LocalCache.Currency.Retention())
	assert.Equal(t, 3, conf.Retry.Query.MaxRetries)
	assert.Equal(t, 30*time.Second, conf.Retry.Query.Max())
	assert.Equal(t, 2, conf.Retry.Mutation.MaxRetries)
	assert.Equal(t, 10*time.Second, conf.Retry.Mutation.Max())
}

func TestLoadEnvOverride(t *testing.T) {
	dir := writeConfig(t, "upstream:\n  baseURL: http://api.example.com\n")
	t.Setenv("API_PASSWORD", "secret")
	t.Setenv(EnvPrefixMap[FileName]+"_UPSTREAM_TIMEOUT", "3")

	conf, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "secret", conf.Auth.Password)
	assert.Equal(t, 3*time.Second, conf.Upstream.RequestTimeout())
}

func TestLoadInvalid(t *testing.T) {
	dir := writeConfig(t, "upstream:\n  baseURL: \"\"\n")
	_, err := Load(dir)
	assert.Error(t, err)

	_, err = Load(t.TempDir())
	assert.Error(t, err)
}

func TestCacheConfigEnable(t *testing.T) {
	c := CacheConfig{Topic: "t", SlotNum: 1, SlotSize: 1}
	assert.True(t, c.Enable())
	c.Topic = ""
	assert.False(t, c.Enable())
}

func TestEnvPrefix(t *testing.T) {
	assert.Equal(t, "FXENV_FXBOARD", EnvPrefixMap[FileName])
}
