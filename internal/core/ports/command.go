package ports

import "context"

// CommandResult captures the observable results of executing a command.
type CommandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// CommandRunner runs external, read-only query commands.
//
//go:generate go run go.uber.org/mock/mockgen -source=command.go -destination=mocks/mock_command.go -package=mocks
type CommandRunner interface {
	// Run executes name with args and returns its captured output.
	// A non-zero exit status is reported through CommandResult.ExitCode, not as an error.
	Run(ctx context.Context, name string, args ...string) (CommandResult, error)
}
