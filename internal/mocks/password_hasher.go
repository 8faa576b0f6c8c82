package mocks

import "github.com/stretchr/testify/mock"

// PasswordHasher is a mock type for the model.PasswordHasher type.
type PasswordHasher struct {
	mock.Mock
}

func (_m *PasswordHasher) Hash(password string) (string, error) {
	ret := _m.Called(password)
	return ret.String(0), ret.Error(1)
}

func (_m *PasswordHasher) Verify(password, hash string) bool {
	ret := _m.Called(password, hash)
	return ret.Bool(0)
}

// NewPasswordHasher creates a new instance of PasswordHasher. It also registers a cleanup function to assert the mocks expectations.
func NewPasswordHasher(t TestingT) *PasswordHasher {
	m := &PasswordHasher{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
