// Package mock provides a controllable implementation of mimic.Dispatcher
// for testing purposes.
//
// It allows defining expectations for scope resolution, command lookup, and
// hook installation, enabling deterministic unit tests for code that builds
// upon the mimic library without a real dispatch environment.
//
// Usage:
//
//	d := mock.New()
//	d.On("Intercept", mock.Anything).Return(mock.Restore(), nil)
//	// pass 'd' to mimic.New
package mock
