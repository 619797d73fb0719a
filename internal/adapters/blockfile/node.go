package blockfile

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/scrwatch/internal/core/ports"
)

// NodeID is the unique identifier for the cache snapshot reader Graft node.
const NodeID graft.ID = "adapter.blockfile"

func init() {
	graft.Register(graft.Node[ports.SnapshotReader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SnapshotReader, error) {
			return NewReader(), nil
		},
	})
}
