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

package cmd

import (
	"os"

	"github.com/mitchellh/mapstructure"
	"github.com/openimsdk/tools/errs"
	"github.com/spf13/cobra"
	"github.com/vison888/fxboard/pkg/common/config"
	"gopkg.in/yaml.v3"
)

const masked = "******"

func newConfigCmd(root *RootCmd) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := marshalConfig(root.conf)
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(data)
			return err
		},
	}
}

// marshalConfig renders conf with the key names of fxboard.yml. Secrets are
// masked.
func marshalConfig(conf *config.Config) ([]byte, error) {
	var m map[string]any
	if err := mapstructure.Decode(conf, &m); err != nil {
		return nil, errs.WrapMsg(err, "decode config failed")
	}
	mask(m, "auth", "password")
	mask(m, "redis", "password")
	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, errs.WrapMsg(err, "yaml marshal config failed")
	}
	return data, nil
}

func mask(m map[string]any, section, key string) {
	sub, ok := m[section].(map[string]any)
	if !ok {
		return
	}
	if s, ok := sub[key].(string); ok && s != "" {
		sub[key] = masked
	}
}
