// Package transfertest provides test doubles for the transfer package.
//
// The Mock types are testify mocks for asserting call sequences. The Memory
// session is a working in-process store that writes real files, for tests
// that need a managed download to succeed end to end.
package transfertest

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jmgilman/objfs/transfer"
)

// MockOpener is a mock transfer.SessionOpener.
type MockOpener struct {
	mock.Mock
}

func (m *MockOpener) OpenSession(ctx context.Context) (transfer.Session, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(transfer.Session)
	return s, args.Error(1)
}

// MockSession is a mock transfer.Session.
type MockSession struct {
	mock.Mock
}

func (m *MockSession) NewManager() (transfer.Manager, error) {
	args := m.Called()
	mgr, _ := args.Get(0).(transfer.Manager)
	return mgr, args.Error(1)
}

func (m *MockSession) Close() error {
	return m.Called().Error(0)
}

// MockManager is a mock transfer.Manager.
type MockManager struct {
	mock.Mock
}

func (m *MockManager) Download(ctx context.Context, bucket, key, dest string) (transfer.Transfer, error) {
	args := m.Called(ctx, bucket, key, dest)
	tr, _ := args.Get(0).(transfer.Transfer)
	return tr, args.Error(1)
}

func (m *MockManager) Shutdown() error {
	return m.Called().Error(0)
}

// MockTransfer is a mock transfer.Transfer.
type MockTransfer struct {
	mock.Mock
}

// Wait returns the configured error. A func(context.Context) error return
// value is called with ctx instead.
func (m *MockTransfer) Wait(ctx context.Context) error {
	args := m.Called(ctx)
	if fn, ok := args.Get(0).(func(context.Context) error); ok {
		return fn(ctx)
	}
	return args.Error(0)
}

func (m *MockTransfer) Progress() (transfer.Progress, error) {
	args := m.Called()
	p, _ := args.Get(0).(transfer.Progress)
	return p, args.Error(1)
}

var (
	_ transfer.SessionOpener = (*MockOpener)(nil)
	_ transfer.Session       = (*MockSession)(nil)
	_ transfer.Manager       = (*MockManager)(nil)
	_ transfer.Transfer      = (*MockTransfer)(nil)
)
