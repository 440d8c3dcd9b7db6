package cpu

import (
	"errors"
	"fmt"

	"github.com/alexei38/disk-cpu-load/internal/monitor"
	"github.com/alexei38/disk-cpu-load/internal/stats/cpu"
)

var ErrMalformedSample = errors.New("malformed cpu sample")

// Result загрузка CPU между двумя выборками.
type Result struct {
	StartTotal uint64
	EndTotal   uint64
	// Used время, когда CPU не простаивал. iowait сюда входит.
	Used    int64
	Elapsed int64
	// Load процент загрузки, дробная часть отбрасывается.
	Load int64
}

// Evaluate вычисляет загрузку CPU между start и end:
// Load = (elapsed - idle) * 100 / elapsed, где elapsed разница сумм всех счетчиков,
// idle разница счетчика с индексом idleIndex. Если время не прошло, загрузка 0.
func Evaluate(start, end cpu.Sample, idleIndex int) (*Result, error) {
	if len(start) != len(end) {
		return nil, fmt.Errorf("%w: start has %d fields, end has %d", ErrMalformedSample, len(start), len(end))
	}
	if idleIndex < 0 || idleIndex >= len(start) {
		return nil, fmt.Errorf("%w: idle index %d out of range for %d fields", ErrMalformedSample, idleIndex, len(start))
	}
	res := &Result{
		StartTotal: start.Total(),
		EndTotal:   end.Total(),
	}
	res.Elapsed = monitor.Delta(res.StartTotal, res.EndTotal)
	idle := monitor.Delta(start[idleIndex], end[idleIndex])
	res.Used = res.Elapsed - idle
	res.Load = monitor.Percent(res.Used, res.Elapsed)
	return res, nil
}
