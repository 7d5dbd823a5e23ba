package interfaces

//go:generate mockgen -source=scanner.go -destination=../mocks/mock_interfaces.go -package=mocks

// This file contains go:generate directives for creating mocks of all interfaces.
// Run `go generate ./...` from the project root to generate all mocks.
