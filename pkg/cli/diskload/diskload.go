package diskload

import (
	"errors"
	"fmt"
	"io"

	"github.com/alexei38/disk-cpu-load/internal/config"
	mcpu "github.com/alexei38/disk-cpu-load/internal/monitor/cpu"
	"github.com/alexei38/disk-cpu-load/internal/runner"
	scpu "github.com/alexei38/disk-cpu-load/internal/stats/cpu"
	"github.com/alexei38/disk-cpu-load/internal/stats/disk"
	"github.com/alexei38/disk-cpu-load/internal/stats/load"
	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
)

var ErrThresholdExceeded = errors.New("disk read cpu load exceeded threshold")

// Sampler снимает накопленные счетчики CPU.
type Sampler interface {
	Get() (scpu.Sample, error)
}

// Tester измеряет загрузку CPU при чтении с диска.
// Все шаги выполняются строго последовательно, любая ошибка прерывает тест.
type Tester struct {
	Config  config.Config
	Runner  runner.Runner
	Sampler Sampler
	Out     io.Writer
	Log     *log.Entry
	// LoadAvg если задан, в verbose режиме выводится load average до и после чтения.
	LoadAvg func() (*load.Stats, error)
}

// Run выполняет тест и возвращает измеренную загрузку.
// Превышение порога возвращается как ErrThresholdExceeded вместе с результатом.
func (t *Tester) Run() (*mcpu.Result, error) {
	cfg := t.Config
	size := humanize.IBytes(uint64(cfg.Xfer) << 20)
	t.printf("Testing CPU load when reading %d MiB (%s) from %s\n", cfg.Xfer, size, cfg.Device)
	t.printf("Maximum acceptable CPU load is %d\n", cfg.MaxLoad)

	t.Log.WithField("device", cfg.Device).Debug("flush buffers")
	if err := disk.Flush(t.Runner, cfg.Device); err != nil {
		return nil, fmt.Errorf("error flushing buffers: %w", err)
	}

	t.logLoadAvg("before read")
	start, err := t.Sampler.Get()
	if err != nil {
		return nil, err
	}

	if cfg.Verbose {
		t.printf("Beginning disk read....\n")
	}
	if err := disk.Read(t.Runner, cfg.Device, cfg.Xfer); err != nil {
		return nil, fmt.Errorf("error reading from disk: %w", err)
	}
	if cfg.Verbose {
		t.printf("Disk read complete!\n")
	}

	end, err := t.Sampler.Get()
	if err != nil {
		return nil, err
	}
	t.logLoadAvg("after read")

	res, err := mcpu.Evaluate(start, end, scpu.IdleIndex)
	if err != nil {
		return nil, err
	}
	if cfg.Verbose {
		t.printf("Start CPU time = %d\n", res.StartTotal)
		t.printf("End CPU time = %d\n", res.EndTotal)
		t.printf("CPU time used = %d\n", res.Used)
		t.printf("Total elapsed time = %d\n", res.Elapsed)
	}
	t.Log.WithField("times", end.Times()).Debug("cpu times after read")

	t.printf("Detected disk read CPU load is %d\n", res.Load)
	if res.Load > int64(cfg.MaxLoad) {
		t.printf("*** DISK CPU LOAD TEST HAS FAILED! ***\n")
		return res, fmt.Errorf("%w: %d > %d", ErrThresholdExceeded, res.Load, cfg.MaxLoad)
	}
	t.printf("Disk CPU load test passed.\n")
	return res, nil
}

func (t *Tester) logLoadAvg(stage string) {
	if t.LoadAvg == nil || !t.Config.Verbose {
		return
	}
	stat, err := t.LoadAvg()
	if err != nil {
		t.Log.Warnf("failed get load average: %v", err)
		return
	}
	t.Log.WithField("stage", stage).Debugf("load average: %s", stat)
}

func (t *Tester) printf(format string, args ...interface{}) {
	fmt.Fprintf(t.Out, format, args...)
}

func NewTester(cfg config.Config, out io.Writer, logger *log.Entry) *Tester {
	return &Tester{
		Config:  cfg,
		Runner:  runner.NewExec(),
		Sampler: scpu.NewSampler(),
		Out:     out,
		Log:     logger,
		LoadAvg: load.GetStat,
	}
}
