package cpu

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	statPath = "/proc/stat"
	cpuTag   = "cpu"

	// IdleIndex позиция счетчика idle в строке cpu файла /proc/stat.
	IdleIndex = 3
)

var ErrSourceUnavailable = errors.New("cpu statistic source unavailable")

// Sample накопленные счетчики времени CPU (в тиках) в порядке /proc/stat:
// user nice system idle iowait irq softirq steal guest guest_nice.
type Sample []uint64

// Total сумма всех счетчиков.
func (s Sample) Total() uint64 {
	var total uint64
	for _, v := range s {
		total += v
	}
	return total
}

// Times именованное представление счетчиков.
type Times struct {
	User      uint64
	Nice      uint64
	System    uint64
	Idle      uint64
	Iowait    uint64
	IRQ       uint64
	SoftIRQ   uint64
	Steal     uint64
	Guest     uint64
	GuestNice uint64
}

// Times раскладывает счетчики по именам, отсутствующие поля остаются нулевыми.
func (s Sample) Times() Times {
	var t Times
	fields := []*uint64{
		&t.User, &t.Nice, &t.System, &t.Idle, &t.Iowait,
		&t.IRQ, &t.SoftIRQ, &t.Steal, &t.Guest, &t.GuestNice,
	}
	for i, v := range s {
		if i >= len(fields) {
			break
		}
		*fields[i] = v
	}
	return t
}

type Sampler struct {
	path   string
	fields int
}

// Get читает агрегированную строку cpu из /proc/stat.
// Количество полей фиксируется первым успешным чтением,
// последующие выборки с другим количеством полей считаются ошибкой.
func (s *Sampler) Get() (Sample, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		fields := strings.Fields(line)
		if len(fields) == 0 || fields[0] != cpuTag {
			continue
		}
		sample, err := parseFields(fields[1:])
		if err != nil {
			return nil, fmt.Errorf("%w: failed parse %s. line: %q err: %v", ErrSourceUnavailable, s.path, line, err)
		}
		if s.fields == 0 {
			s.fields = len(sample)
		} else if s.fields != len(sample) {
			return nil, fmt.Errorf(
				"%w: %s has %d cpu fields, previous sample had %d",
				ErrSourceUnavailable, s.path, len(sample), s.fields,
			)
		}
		return sample, nil
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed read %s: %v", ErrSourceUnavailable, s.path, err)
	}
	return nil, fmt.Errorf("%w: line %q not found in %s", ErrSourceUnavailable, cpuTag, s.path)
}

func parseFields(fields []string) (Sample, error) {
	if len(fields) <= IdleIndex {
		return nil, fmt.Errorf("need at least %d fields, got %d", IdleIndex+1, len(fields))
	}
	sample := make(Sample, len(fields))
	for i, field := range fields {
		v, err := strconv.ParseUint(field, 10, 64)
		if err != nil {
			return nil, err
		}
		sample[i] = v
	}
	return sample, nil
}

func NewSampler() *Sampler {
	return NewSamplerFromFile(statPath)
}

// NewSamplerFromFile читает счетчики из произвольного файла в формате /proc/stat.
func NewSamplerFromFile(path string) *Sampler {
	return &Sampler{path: path}
}
