package disk

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/alexei38/disk-cpu-load/internal/runner"
)

const (
	blockSize = 1048576
	nullSink  = "/dev/null"
)

var ErrExternalCommand = errors.New("external command failed")

// Flush сбрасывает буферы блочного устройства: blockdev --flushbufs <device>.
func Flush(r runner.Runner, device string) error {
	return run(r, "blockdev", "--flushbufs", device)
}

// Read читает xfer MiB с устройства в /dev/null через dd.
func Read(r runner.Runner, device string, xfer int) error {
	return run(r, "dd",
		"if="+device,
		"of="+nullSink,
		"bs="+strconv.Itoa(blockSize),
		"count="+strconv.Itoa(xfer),
	)
}

func run(r runner.Runner, name string, args ...string) error {
	res, err := r.Run(name, args...)
	if err == nil {
		return nil
	}
	if res != nil {
		if msg := bytes.TrimSpace(res.Stderr); len(msg) > 0 {
			return fmt.Errorf("%w: %s exited with status %d: %s", ErrExternalCommand, name, res.ExitCode, msg)
		}
		return fmt.Errorf("%w: %s exited with status %d", ErrExternalCommand, name, res.ExitCode)
	}
	return fmt.Errorf("%w: %v", ErrExternalCommand, err)
}
