// SPDX-License-Identifier: MIT
// Package: itemnet/config
//
// errors.go — sentinel errors for configuration.

package config

import "errors"

var (
	// ErrRead indicates a configuration file that cannot be read.
	ErrRead = errors.New("config: cannot read file")

	// ErrParse indicates a malformed file, unknown key or bad env value.
	ErrParse = errors.New("config: cannot parse")

	// ErrInvalid indicates a value outside its allowed range or set.
	ErrInvalid = errors.New("config: invalid value")
)
