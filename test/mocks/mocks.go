// test/mocks/mocks.go

// Package mocks contains generated mocks for the module's interfaces.
// To regenerate mocks, run `go generate ./...` from the root directory.
package mocks

//go:generate mockgen -source=../../query.go -destination=querier_mock.go -package=mocks Querier
