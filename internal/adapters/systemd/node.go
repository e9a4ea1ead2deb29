package systemd

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/brokenpkg/internal/core/ports"
)

// NodeID is the unique identifier for the service link checker Graft node.
const NodeID graft.ID = "adapter.systemd"

func init() {
	graft.Register(graft.Node[ports.ServiceLinkChecker]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ServiceLinkChecker, error) {
			return NewChecker(), nil
		},
	})
}
