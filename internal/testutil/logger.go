package testutil

import (
	"io"

	"github.com/dtroode/authkeeper/internal/logger"
)

// MakeNoopLogger returns a logger that discards everything.
func MakeNoopLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, 0, "text")
}
