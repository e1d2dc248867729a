package source

import (
	"bufio"
	"context"
	"fmt"
	"time"

	"go.bug.st/serial"

	"github.com/stridesense/gaitwatch/internal/monitoring"
)

// SerialSource reads "x,y,z,timestamp_ms" lines from a serial-attached
// sensor rig.
type SerialSource struct {
	PortName string
	BaudRate int
}

// Run opens the port and streams samples into h until the context is
// cancelled. Malformed lines are logged and dropped.
func (s *SerialSource) Run(ctx context.Context, h Handler) error {
	baud := s.BaudRate
	if baud == 0 {
		baud = 115200
	}

	port, err := serial.Open(s.PortName, &serial.Mode{BaudRate: baud})
	if err != nil {
		return fmt.Errorf("failed to open serial port %s: %w", s.PortName, err)
	}
	defer port.Close()

	// A read timeout keeps the loop responsive to cancellation.
	if err := port.SetReadTimeout(time.Second); err != nil {
		return fmt.Errorf("failed to set read timeout: %w", err)
	}

	scanner := bufio.NewScanner(port)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("serial read failed: %w", err)
			}
			// Timeout with no data; try again.
			scanner = bufio.NewScanner(port)
			continue
		}

		sample, err := ParseLine(scanner.Text())
		if err != nil {
			monitoring.Logf("serial: dropping line: %v", err)
			continue
		}
		h(sample)
	}
}
