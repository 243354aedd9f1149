// Copyright 2025 astragull
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

package ankiconnect

import "fmt"

// 🚨 TransportError reports a round trip that never produced a usable
// response. Err is set when the request failed on the wire, Status and
// Message when the endpoint answered with a non-200 status.
type TransportError struct {
	Action  string
	Status  int
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ankiconnect %s: %v", e.Action, e.Err)
	}
	return fmt.Sprintf("ankiconnect %s: unexpected status %d: %s", e.Action, e.Status, e.Message)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// 🚨 RemoteError is an error Anki itself reported inside a well-formed
// response envelope, such as an unknown deck or a malformed query.
type RemoteError struct {
	Action  string
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("ankiconnect %s: %s", e.Action, e.Message)
}
