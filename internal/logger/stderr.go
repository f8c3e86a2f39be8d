//go:build !windows

package logger

import (
	"bufio"
	"os"
	"strings"
	"syscall"

	"go.uber.org/zap"
)

// CaptureStderr redirects file descriptor 2 into log. Audio backends write
// there directly, which would corrupt the TUI. The returned restore func
// puts the original stderr back.
func CaptureStderr(log *zap.Logger) (restore func(), err error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}

	orig, err := syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return nil, err
	}
	if err := syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		syscall.Close(orig)
		r.Close()
		w.Close()
		return nil, err
	}

	log = log.Named("stderr")
	done := make(chan struct{})
	go func() {
		defer close(done)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				log.Warn(line)
			}
		}
	}()

	return func() {
		_ = syscall.Dup2(orig, int(os.Stderr.Fd()))
		_ = syscall.Close(orig)
		w.Close()
		<-done
		r.Close()
	}, nil
}
