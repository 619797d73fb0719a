package ports

import "context"

// ProcessTable queries the operating system for processes and their sockets.
//
//go:generate mockgen -source=process.go -destination=mocks/mock_process.go -package=mocks
type ProcessTable interface {
	// FindProcess returns the PID of the first process whose executable name equals name.
	FindProcess(ctx context.Context, name string) (pid int32, found bool, err error)
	// ListeningPorts returns the local ports of TCP sockets in LISTEN state owned by pid,
	// in the order the operating system enumerates them.
	ListeningPorts(ctx context.Context, pid int32) ([]uint16, error)
}
