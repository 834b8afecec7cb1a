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
	"time"
)

// Config is the whole fxboard.yml file.
type Config struct {
	API        API        `mapstructure:"api"`
	Upstream   Upstream   `mapstructure:"upstream" validate:"required"`
	Auth       Auth       `mapstructure:"auth"`
	LocalCache LocalCache `mapstructure:"localCache"`
	Retry      Retry      `mapstructure:"retry"`
	Redis      Redis      `mapstructure:"redis"`
	Prometheus Prometheus `mapstructure:"prometheus"`
	Log        Log        `mapstructure:"log"`
}

type API struct {
	ListenIP string `mapstructure:"listenIP"`
	Ports    []int  `mapstructure:"ports" validate:"min=1,dive,min=1,max=65535"`
	// ShutdownTimeout in seconds.
	ShutdownTimeout int `mapstructure:"shutdownTimeout"`
}

// Upstream describes the remote REST API all data is fetched from.
type Upstream struct {
	BaseURL    string `mapstructure:"baseURL" validate:"required,url"`
	APIPrefix  string `mapstructure:"apiPrefix"`
	Version    string `mapstructure:"version"`
	DeviceID   string `mapstructure:"deviceID"`
	Language   string `mapstructure:"language"`
	Timeout    int    `mapstructure:"timeout"` // seconds
	RateLimit  int    `mapstructure:"rateLimit"`
	RateBurst  int    `mapstructure:"rateBurst"`
	MaxIdleCon int    `mapstructure:"maxIdleConns"`
}

type Auth struct {
	CookieName    string `mapstructure:"cookieName"`
	CookieMaxAge  int    `mapstructure:"cookieMaxAge"` // days
	LoginPath     string `mapstructure:"loginPath"`
	PhonePrefix   string `mapstructure:"phonePrefix"`
	Phone         string `mapstructure:"phone"`
	Password      string `mapstructure:"password"`
	FirebaseToken string `mapstructure:"firebaseToken"`
	// RedirectDelay is how long the login success page waits before going home, in milliseconds.
	RedirectDelay int `mapstructure:"redirectDelay"`
}

// CacheConfig configures one local cache instance.
type CacheConfig struct {
	Topic        string `mapstructure:"topic"`
	SlotNum      int    `mapstructure:"slotNum"`
	SlotSize     int    `mapstructure:"slotSize"`
	StaleTime    int    `mapstructure:"staleTime"`    // seconds an entry stays fresh
	GCTime       int    `mapstructure:"gcTime"`       // seconds an unused entry is retained
	FailedExpire int    `mapstructure:"failedExpire"` // seconds a failed fetch is remembered
}

type LocalCache struct {
	Currency CacheConfig `mapstructure:"currency"`
	User     CacheConfig `mapstructure:"user"`
}

type RetryPolicy struct {
	MaxRetries int `mapstructure:"maxRetries"`
	BaseDelay  int `mapstructure:"baseDelay"` // milliseconds
	MaxDelay   int `mapstructure:"maxDelay"`  // milliseconds
}

type Retry struct {
	Query    RetryPolicy `mapstructure:"query"`
	Mutation RetryPolicy `mapstructure:"mutation"`
}

type Redis struct {
	Enable   bool     `mapstructure:"enable"`
	Address  []string `mapstructure:"address"`
	Username string   `mapstructure:"username"`
	Password string   `mapstructure:"password"`
	DB       int      `mapstructure:"db"`
	PoolSize int      `mapstructure:"poolSize"`
}

type Prometheus struct {
	Enable bool  `mapstructure:"enable"`
	Ports  []int `mapstructure:"ports"`
}

type Log struct {
	StorageLocation     string `mapstructure:"storageLocation"`
	RotationTime        uint   `mapstructure:"rotationTime"`
	RemainRotationCount uint   `mapstructure:"remainRotationCount"`
	RemainLogLevel      int    `mapstructure:"remainLogLevel"`
	IsStdout            bool   `mapstructure:"isStdout"`
	IsJson              bool   `mapstructure:"isJson"`
	IsSimplify          bool   `mapstructure:"isSimplify"`
	WithStack           bool   `mapstructure:"withStack"`
}

func (u *Upstream) RequestTimeout() time.Duration {
	return time.Second * time.Duration(u.Timeout)
}

func (l *CacheConfig) Fresh() time.Duration {
	return time.Second * time.Duration(l.StaleTime)
}

func (l *CacheConfig) Retention() time.Duration {
	return time.Second * time.Duration(l.GCTime)
}

func (l *CacheConfig) Failed() time.Duration {
	return time.Second * time.Duration(l.FailedExpire)
}

// Enable reports whether invalidations for this cache are broadcast over redis.
func (l *CacheConfig) Enable() bool {
	return l.Topic != "" && l.SlotNum > 0 && l.SlotSize > 0
}

func (r *RetryPolicy) Base() time.Duration {
	return time.Millisecond * time.Duration(r.BaseDelay)
}

func (r *RetryPolicy) Max() time.Duration {
	return time.Millisecond * time.Duration(r.MaxDelay)
}

func (a *Auth) MaxAge() time.Duration {
	return time.Hour * 24 * time.Duration(a.CookieMaxAge)
}

// Default returns the values used when the config file leaves a key out.
func Default() *Config {
	return &Config{
		API: API{ListenIP: "0.0.0.0", Ports: []int{3000}, ShutdownTimeout: 15},
		Upstream: Upstream{
			APIPrefix: "/api/v3/",
			Version:   "1.0.0",
			DeviceID:  "pwa",
			Language:  "fa",
			Timeout:   10,
		},
		Auth: Auth{
			CookieName:    "token",
			CookieMaxAge:  7,
			LoginPath:     "/login",
			PhonePrefix:   "+98",
			Phone:         "09361101775",
			FirebaseToken: "23141",
			RedirectDelay: 1000,
		},
		LocalCache: LocalCache{
			Currency: CacheConfig{SlotNum: 100, SlotSize: 2000, StaleTime: 300, GCTime: 600},
			User:     CacheConfig{SlotNum: 10, SlotSize: 100, StaleTime: 300, GCTime: 600},
		},
		Retry: Retry{
			Query:    RetryPolicy{MaxRetries: 3, BaseDelay: 1000, MaxDelay: 30000},
			Mutation: RetryPolicy{MaxRetries: 2, BaseDelay: 1000, MaxDelay: 10000},
		},
		Log: Log{
			StorageLocation:     "../../../../logs/",
			RotationTime:        24,
			RemainRotationCount: 2,
			RemainLogLevel:      6,
			IsStdout:            true,
		},
	}
}
