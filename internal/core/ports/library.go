package ports

import "debug/elf"

// LinkedObject describes the ELF object whose library needs are being resolved.
type LinkedObject struct {
	Path    string
	Class   elf.Class
	Machine elf.Machine
	RPath   []string
	RunPath []string
}

// LibraryResolver is the platform dynamic-loader search capability.
// It is the only place that knows the loader's search order.
//
//go:generate go run go.uber.org/mock/mockgen -source=library.go -destination=mocks/mock_library.go -package=mocks
type LibraryResolver interface {
	// Resolve returns the path the loader would map for need when loading obj.
	Resolve(need string, obj LinkedObject) (path string, found bool)
}
