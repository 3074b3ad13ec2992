package msdk

import (
	"github.com/stretchr/testify/mock"
)

type mockRuntime struct {
	mock.Mock
}

func newMockRuntime(t interface {
	mock.TestingT
	Cleanup(func())
}) *mockRuntime {
	m := &mockRuntime{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *mockRuntime) Init(impl Implementation, version Version) (Session, Status) {
	args := m.Called(impl, version)
	return args.Get(0).(Session), args.Get(1).(Status)
}

func (m *mockRuntime) Close(session Session) Status {
	args := m.Called(session)
	return args.Get(0).(Status)
}

func (m *mockRuntime) QueryIMPL(session Session) (Implementation, Status) {
	args := m.Called(session)
	return args.Get(0).(Implementation), args.Get(1).(Status)
}

func (m *mockRuntime) QueryVersion(session Session) (Version, Status) {
	args := m.Called(session)
	return args.Get(0).(Version), args.Get(1).(Status)
}

func (m *mockRuntime) SetHandle(session Session, typ HandleType, handle uintptr) Status {
	args := m.Called(session, typ, handle)
	return args.Get(0).(Status)
}

// expectOpen sets up a successful Init plus both diagnostic queries.
func (m *mockRuntime) expectOpen(impl Implementation, session Session) {
	m.On("Init", impl, RequestedVersion).Return(session, StatusNone).Once()
	m.On("QueryIMPL", session).Return(impl, StatusNone).Once()
	m.On("QueryVersion", session).Return(Version{Major: 1, Minor: 35}, StatusNone).Once()
}

type mockDisplay struct {
	mock.Mock
}

func newMockDisplay(t interface {
	mock.TestingT
	Cleanup(func())
}) *mockDisplay {
	m := &mockDisplay{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *mockDisplay) Bind() error {
	return m.Called().Error(0)
}

func (m *mockDisplay) GetDisplayDRM(fd int) Display {
	return m.Called(fd).Get(0).(Display)
}

func (m *mockDisplay) Initialize(dpy Display) (int, int, VAStatus) {
	args := m.Called(dpy)
	return args.Int(0), args.Int(1), args.Get(2).(VAStatus)
}

func (m *mockDisplay) Terminate(dpy Display) VAStatus {
	return m.Called(dpy).Get(0).(VAStatus)
}

type mockDevice struct {
	mock.Mock
}

func newMockDevice(t interface {
	mock.TestingT
	Cleanup(func())
}) *mockDevice {
	m := &mockDevice{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *mockDevice) Open(path string) (int, error) {
	args := m.Called(path)
	return args.Int(0), args.Error(1)
}

func (m *mockDevice) Close(fd int) error {
	return m.Called(fd).Error(0)
}
