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
	"context"

	"github.com/spf13/cobra"
	"github.com/vison888/fxboard/internal/fxboard"
)

type FxboardCmd struct {
	*RootCmd
}

func NewFxboardCmd() *FxboardCmd {
	c := &FxboardCmd{RootCmd: NewRootCmd("fxboard")}
	c.Command.RunE = func(cmd *cobra.Command, args []string) error {
		c.banner()
		return fxboard.Start(cmd.Context(), c.conf)
	}
	c.Command.AddCommand(newConfigCmd(c.RootCmd))
	return c
}

func (c *FxboardCmd) Exec(ctx context.Context) error {
	return c.Command.ExecuteContext(ctx)
}
