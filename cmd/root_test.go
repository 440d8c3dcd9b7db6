package cmd

import (
	"bytes"
	"io"
	"testing"

	"github.com/alexei38/disk-cpu-load/internal/config"
	"github.com/alexei38/disk-cpu-load/internal/runner/fake"
	scpu "github.com/alexei38/disk-cpu-load/internal/stats/cpu"
	"github.com/alexei38/disk-cpu-load/pkg/cli/diskload"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type staticSampler struct {
	list []scpu.Sample
}

func (s *staticSampler) Get() (scpu.Sample, error) {
	sample := s.list[0]
	s.list = s.list[1:]
	return sample, nil
}

// fakeTester подменяет внешние команды и /proc/stat, загрузка CPU равна busy процентам.
func fakeTester(t *testing.T, busy uint64) (*fake.Runner, *config.Config) {
	t.Helper()
	r := fake.New()
	got := &config.Config{}
	orig := newTester
	t.Cleanup(func() { newTester = orig })
	newTester = func(cfg config.Config, out io.Writer, logger *log.Entry) *diskload.Tester {
		*got = cfg
		tester := diskload.NewTester(cfg, out, logger)
		tester.Runner = r
		tester.Sampler = &staticSampler{list: []scpu.Sample{{0, 0, 0, 0}, {busy, 0, 0, 100 - busy}}}
		tester.LoadAvg = nil
		return tester
	}
	return r, got
}

func TestRunPassed(t *testing.T) {
	r, cfg := fakeTester(t, 25)
	out := &bytes.Buffer{}
	require.Equal(t, 0, run([]string{"--max-load", "30", "sdb"}, out))
	require.Contains(t, out.String(), "Disk CPU load test passed.")
	require.Equal(t, "/dev/sdb", cfg.Device)
	require.Equal(t, 30, cfg.MaxLoad)
	require.Equal(t, 4096, cfg.Xfer)
	require.Equal(t, "blockdev --flushbufs /dev/sdb", r.Calls[0])
}

func TestRunFailed(t *testing.T) {
	_, cfg := fakeTester(t, 45)
	out := &bytes.Buffer{}
	require.Equal(t, 1, run([]string{"--max-load", "30", "--xfer", "8", "--verbose", "/dev/vdb"}, out))
	require.Contains(t, out.String(), "*** DISK CPU LOAD TEST HAS FAILED! ***")
	require.Contains(t, out.String(), "Beginning disk read....")
	require.True(t, cfg.Verbose)
	require.Equal(t, 8, cfg.Xfer)
	require.Equal(t, "/dev/vdb", cfg.Device)
}

func TestRunExternalFailure(t *testing.T) {
	r, _ := fakeTester(t, 10)
	r.Fail["dd"] = 1
	out := &bytes.Buffer{}
	require.Equal(t, 1, run(nil, out))
	require.NotContains(t, out.String(), "Detected")
}

func TestRunBadArgs(t *testing.T) {
	fakeTester(t, 10)
	tests := [][]string{
		{"--xfer", "abc"},
		{"--xfer", "0"},
		{"sda", "sdb"},
		{"--unknown"},
	}
	for _, args := range tests {
		require.Equal(t, 1, run(args, &bytes.Buffer{}), args)
	}
}
