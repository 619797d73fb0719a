// Package sysproc reads the operating system process and socket tables.
package sysproc

import (
	"context"
	"slices"

	"github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"
	"go.trai.ch/scrwatch/internal/core/ports"
)

var _ ports.ProcessTable = (*Table)(nil)

const statusListen = "LISTEN"

// proc is the part of a process the table needs.
type proc struct {
	pid  int32
	name func(context.Context) (string, error)
}

// Table implements ports.ProcessTable with gopsutil.
type Table struct {
	processes   func(ctx context.Context) ([]proc, error)
	connections func(ctx context.Context, kind string, pid int32) ([]net.ConnectionStat, error)
}

// NewTable creates a Table backed by the live operating system.
func NewTable() *Table {
	return &Table{
		processes:   listProcesses,
		connections: net.ConnectionsPidWithContext,
	}
}

func listProcesses(ctx context.Context) ([]proc, error) {
	ps, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]proc, 0, len(ps))
	for _, p := range ps {
		out = append(out, proc{pid: p.Pid, name: p.NameWithContext})
	}
	return out, nil
}

// FindProcess implements ports.ProcessTable. Processes whose name cannot be
// read, typically because they exited during the scan, are skipped.
func (t *Table) FindProcess(ctx context.Context, name string) (int32, bool, error) {
	ps, err := t.processes(ctx)
	if err != nil {
		return 0, false, err
	}

	for _, p := range ps {
		if err := ctx.Err(); err != nil {
			return 0, false, err
		}
		got, err := p.name(ctx)
		if err != nil {
			continue
		}
		if got == name {
			return p.pid, true, nil
		}
	}
	return 0, false, nil
}

// ListeningPorts implements ports.ProcessTable. A port reported for both
// IPv4 and IPv6 appears once, at its first position.
func (t *Table) ListeningPorts(ctx context.Context, pid int32) ([]uint16, error) {
	conns, err := t.connections(ctx, "tcp", pid)
	if err != nil {
		return nil, err
	}

	var listening []uint16
	for _, c := range conns {
		if c.Status != statusListen || c.Pid != pid {
			continue
		}
		port := uint16(c.Laddr.Port)
		if !slices.Contains(listening, port) {
			listening = append(listening, port)
		}
	}
	return listening, nil
}
