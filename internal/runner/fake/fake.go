package fake

import (
	"fmt"
	"strings"

	"github.com/alexei38/disk-cpu-load/internal/runner"
)

// Runner подменяет внешние команды в тестах.
// Fail задает код возврата по имени команды, по умолчанию команды завершаются успешно.
type Runner struct {
	Fail   map[string]int
	Stderr map[string]string
	Calls  []string
	// OnRun вызывается после записи вызова, например чтобы продвинуть счетчики CPU.
	OnRun func(name string, args ...string)
}

func (r *Runner) Run(name string, args ...string) (*runner.Result, error) {
	r.Calls = append(r.Calls, strings.TrimSpace(name+" "+strings.Join(args, " ")))
	if r.OnRun != nil {
		r.OnRun(name, args...)
	}
	res := &runner.Result{Stderr: []byte(r.Stderr[name])}
	if code, ok := r.Fail[name]; ok {
		res.ExitCode = code
		return res, fmt.Errorf("failed run %s: exit status %d", name, code)
	}
	return res, nil
}

func New() *Runner {
	return &Runner{
		Fail:   map[string]int{},
		Stderr: map[string]string{},
	}
}
