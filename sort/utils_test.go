package sort_test

import (
	"io"
	"log"
)

func newLogger(writer io.Writer) *log.Logger {
	return log.New(writer, "", 0)
}
