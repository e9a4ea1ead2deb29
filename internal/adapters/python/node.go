package python

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/brokenpkg/internal/core/ports"
)

// NodeID is the unique identifier for the interpreter checker Graft node.
const NodeID graft.ID = "adapter.python"

func init() {
	graft.Register(graft.Node[ports.InterpreterChecker]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.InterpreterChecker, error) {
			return NewChecker(), nil
		},
	})
}
