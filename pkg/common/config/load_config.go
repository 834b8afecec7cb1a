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
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/openimsdk/tools/errs"
	"github.com/spf13/viper"
)

// LoadConfig reads path into config. Every key may be overridden by an
// environment variable named envPrefix + "_" + the upper-cased key path with
// dots replaced by underscores, e.g. FXENV_FXBOARD_UPSTREAM_BASEURL.
func LoadConfig(path string, envPrefix string, config any) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := setDefaults(v, config); err != nil {
		return err
	}
	if err := bindAliases(v, envPrefix); err != nil {
		return err
	}

	if err := v.ReadInConfig(); err != nil {
		return errs.WrapMsg(err, "failed to read config file", "path", path, "envPrefix", envPrefix)
	}

	if err := v.Unmarshal(config, func(config *mapstructure.DecoderConfig) {
		config.TagName = "mapstructure"
	}); err != nil {
		return errs.WrapMsg(err, "failed to unmarshal config", "path", path, "envPrefix", envPrefix)
	}
	return nil
}

// setDefaults registers the current values of config as viper defaults, so
// keys missing from the file are still known to AutomaticEnv.
func setDefaults(v *viper.Viper, config any) error {
	var m map[string]any
	if err := mapstructure.Decode(config, &m); err != nil {
		return errs.WrapMsg(err, "failed to decode config defaults")
	}
	var walk func(prefix string, m map[string]any)
	walk = func(prefix string, m map[string]any) {
		for k, val := range m {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			if sub, ok := val.(map[string]any); ok {
				walk(key, sub)
				continue
			}
			v.SetDefault(key, val)
		}
	}
	walk("", m)
	return nil
}

func bindAliases(v *viper.Viper, envPrefix string) error {
	for key, alias := range EnvAliases {
		name := strings.ToUpper(envPrefix + "_" + strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, name, alias); err != nil {
			return errs.WrapMsg(err, "failed to bind env", "key", key, "alias", alias)
		}
	}
	return nil
}

// Load reads the fxboard config file below configFolderPath on top of Default.
func Load(configFolderPath string) (*Config, error) {
	conf := Default()
	path := ResolvePath(configFolderPath, FileName)
	if err := LoadConfig(path, EnvPrefixMap[FileName], conf); err != nil {
		return nil, err
	}
	if err := Validate(conf); err != nil {
		return nil, err
	}
	return conf, nil
}

var validate = validator.New()

func Validate(conf *Config) error {
	if err := validate.Struct(conf); err != nil {
		return errs.ErrArgs.WrapMsg(err.Error())
	}
	return nil
}
