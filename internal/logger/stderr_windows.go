//go:build windows

package logger

import "go.uber.org/zap"

// CaptureStderr is a no-op on Windows, whose audio backend does not write
// to stderr.
func CaptureStderr(_ *zap.Logger) (restore func(), err error) {
	return func() {}, nil
}
