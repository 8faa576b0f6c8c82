package mocks

import (
	"context"
	"net"

	"github.com/stretchr/testify/mock"
)

// SecurityLayer is a mock type for the model.SecurityLayer type.
type SecurityLayer struct {
	mock.Mock
}

func (_m *SecurityLayer) Listen(network, addr string) (net.Listener, error) {
	ret := _m.Called(network, addr)

	var r0 net.Listener
	if v := ret.Get(0); v != nil {
		r0 = v.(net.Listener)
	}
	return r0, ret.Error(1)
}

// NewSecurityLayer creates a new instance of SecurityLayer. It also registers a cleanup function to assert the mocks expectations.
func NewSecurityLayer(t TestingT) *SecurityLayer {
	m := &SecurityLayer{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// Pinger is a mock type for the model.Pinger type.
type Pinger struct {
	mock.Mock
}

func (_m *Pinger) Ping(ctx context.Context) error {
	ret := _m.Called(ctx)
	return ret.Error(0)
}

// NewPinger creates a new instance of Pinger. It also registers a cleanup function to assert the mocks expectations.
func NewPinger(t TestingT) *Pinger {
	m := &Pinger{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
