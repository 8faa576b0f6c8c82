// Package mocks contains testify mocks for the interfaces in model and the API layer.
package mocks

import "github.com/stretchr/testify/mock"

// TestingT is satisfied by *testing.T.
type TestingT interface {
	mock.TestingT
	Cleanup(func())
}
