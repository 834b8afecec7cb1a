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

package servererrs

// Error codes returned by fxboard. They are kept apart from the tools/errs
// range (1000-1999).
const (
	QueryDisabledError = 3001 // a query was requested with an empty key
	UpstreamError      = 3002 // the REST API answered with a non-2xx status
	UnauthorizedError  = 3003 // the REST API rejected the credential
	LoginFailedError   = 3004
	EnvelopeError      = 3005 // a single-entity response had no data field
)
