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
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/openimsdk/tools/errs"
	"github.com/openimsdk/tools/log"
	"github.com/spf13/cobra"
	"github.com/vison888/fxboard/pkg/common/config"
)

// Version is set at build time with -ldflags.
var Version = "v0.0.0-dev"

const loggerPrefixName = "fxboard"

type RootCmd struct {
	Command     cobra.Command
	processName string
	conf        *config.Config
}

func NewRootCmd(processName string) *RootCmd {
	r := &RootCmd{processName: processName}
	r.Command = cobra.Command{
		Use:          processName,
		Short:        "Currency and crypto exchange rate board",
		Version:      Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return r.persistentPreRun(cmd)
		},
	}
	r.Command.PersistentFlags().StringP(config.FlagConf, "c", "", "path of config directory")
	return r
}

func (r *RootCmd) Config() *config.Config {
	return r.conf
}

func (r *RootCmd) persistentPreRun(cmd *cobra.Command) error {
	folder, err := cmd.Flags().GetString(config.FlagConf)
	if err != nil {
		return errs.WrapMsg(err, "read flag failed", "flag", config.FlagConf)
	}
	conf, err := config.Load(folder)
	if err != nil {
		return err
	}
	r.conf = conf
	return r.initLog()
}

func (r *RootCmd) initLog() error {
	l := r.conf.Log
	err := log.InitLoggerFromConfig(loggerPrefixName, r.processName, "", "",
		l.RemainLogLevel, l.IsStdout, l.IsJson, l.StorageLocation,
		l.RemainRotationCount, l.RotationTime, Version, l.IsSimplify)
	if err != nil {
		return errs.WrapMsg(err, "init logger failed")
	}
	return nil
}

func (r *RootCmd) banner() {
	c := color.New(color.FgGreen, color.Bold)
	_, _ = c.Fprintf(os.Stdout, "%s %s\n", r.processName, Version)
	_, _ = fmt.Fprintf(os.Stdout, "upstream %s, listening on %s:%v\n",
		r.conf.Upstream.BaseURL, r.conf.API.ListenIP, r.conf.API.Ports)
}
