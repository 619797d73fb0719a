package sysproc

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/scrwatch/internal/core/ports"
)

// NodeID is the unique identifier for the process table Graft node.
const NodeID graft.ID = "adapter.process_table"

func init() {
	graft.Register(graft.Node[ports.ProcessTable]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ProcessTable, error) {
			return NewTable(), nil
		},
	})
}
