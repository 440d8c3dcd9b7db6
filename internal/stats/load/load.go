package load

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

const loadAveragePath = "/proc/loadavg"

// Stats средняя загрузка системы за 1, 5 и 15 минут.
type Stats struct {
	Load1  float32
	Load5  float32
	Load15 float32
}

func (s Stats) String() string {
	return fmt.Sprintf("%.2f %.2f %.2f", s.Load1, s.Load5, s.Load15)
}

func GetStat() (*Stats, error) {
	return GetStatFromFile(loadAveragePath)
}

func GetStatFromFile(path string) (*Stats, error) {
	stat := &Stats{}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("failed read %s: %w", path, err)
		}
		return nil, fmt.Errorf("failed parse %s: empty file", path)
	}
	line := scanner.Text()
	count, err := fmt.Sscanf(
		line,
		"%f %f %f",
		&stat.Load1, &stat.Load5, &stat.Load15,
	)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed parse %s. line: %q err: %w", path, line, err)
	}
	if count < 3 {
		return nil, fmt.Errorf("failed parse %s. line: %q", path, line)
	}
	return stat, nil
}
