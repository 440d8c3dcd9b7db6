package runner

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Result результат выполнения внешней команды.
type Result struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// Runner запускает внешние команды.
// Ненулевой код возврата считается ошибкой, Result при этом заполнен.
type Runner interface {
	Run(name string, args ...string) (*Result, error)
}

type execRunner struct{}

func (execRunner) Run(name string, args ...string) (*Result, error) {
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd := exec.Command(name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	res := &Result{
		ExitCode: cmd.ProcessState.ExitCode(),
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return res, fmt.Errorf("failed run %s %s: %w", name, strings.Join(args, " "), err)
		}
		return nil, fmt.Errorf("failed start %s: %w", name, err)
	}
	return res, nil
}

func NewExec() Runner {
	return execRunner{}
}
