// SPDX-License-Identifier: Apache-2.0

package server

import "errors"

var (
	errNoAddressConfigured = errors.New("no http listen address configured")
)
