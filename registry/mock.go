package registry

import (
	"github.com/ruteri/inventor-registry/interfaces"
	"github.com/stretchr/testify/mock"
)

// MockInventorRegistry mocks the InventorRegistry interface
type MockInventorRegistry struct {
	mock.Mock
}

// RegisterInventor mocks the RegisterInventor method
func (m *MockInventorRegistry) RegisterInventor(caller interfaces.Identity, name, credentials string) error {
	args := m.Called(caller, name, credentials)
	return args.Error(0)
}

// VerifyInventor mocks the VerifyInventor method
func (m *MockInventorRegistry) VerifyInventor(caller, target interfaces.Identity) error {
	args := m.Called(caller, target)
	return args.Error(0)
}

// IsInventor mocks the IsInventor method
func (m *MockInventorRegistry) IsInventor(identity interfaces.Identity) bool {
	args := m.Called(identity)
	return args.Bool(0)
}

// IsVerifiedInventor mocks the IsVerifiedInventor method
func (m *MockInventorRegistry) IsVerifiedInventor(identity interfaces.Identity) bool {
	args := m.Called(identity)
	return args.Bool(0)
}

// TransferAdmin mocks the TransferAdmin method
func (m *MockInventorRegistry) TransferAdmin(caller, newAdmin interfaces.Identity) error {
	args := m.Called(caller, newAdmin)
	return args.Error(0)
}

// Admin mocks the Admin method
func (m *MockInventorRegistry) Admin() interfaces.Identity {
	args := m.Called()
	return args.Get(0).(interfaces.Identity)
}

// Inventor mocks the Inventor method
func (m *MockInventorRegistry) Inventor(identity interfaces.Identity) (interfaces.InventorRecord, bool) {
	args := m.Called(identity)
	return args.Get(0).(interfaces.InventorRecord), args.Bool(1)
}

// Len mocks the Len method
func (m *MockInventorRegistry) Len() int {
	args := m.Called()
	return args.Int(0)
}
