//go:build tools
// +build tools

// Package tools tracks the code generators run by go generate, mockgen for
// the mocks directory, as module dependencies.
package hive_signal

import (
	_ "go.uber.org/mock/mockgen"
)
