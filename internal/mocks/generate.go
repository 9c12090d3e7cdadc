// Package mocks provides mock implementations for testing the membergate auth gateway.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the
// port interfaces. The mocks are generated using go:generate directives and provide
// a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockUserRepository(ctrl)
//	mockRepo.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(users, nil)
package mocks

// Generate mocks for the auth gateway ports: UserRepository, SessionStore,
// and PasswordHasher from internal/ports.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=auth_ports_mock.go github.com/target/membergate/internal/ports UserRepository,SessionStore,PasswordHasher
