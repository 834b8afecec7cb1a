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

	"github.com/vison888/fxboard/pkg/common/model"
)

func NewUserClient(cli *Client) *UserClient {
	return &UserClient{cli: cli}
}

type UserClient struct {
	cli *Client
}

func (x *UserClient) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	body, err := x.cli.postJSON(ctx, "user/login", "user/login", req)
	if err != nil {
		return nil, err
	}
	return unwrapData[*model.LoginResponse](body)
}
