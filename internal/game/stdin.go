package game

import (
	"bufio"
	"io"

	"go.uber.org/zap"
)

// ReadLines feeds every parsable line of r into sink until r is exhausted.
// It runs on its own goroutine; the loop only ever sees the latest input.
func ReadLines(r io.Reader, sink *LatestInput, log *zap.Logger) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		in, ok := ParseInput(sc.Text())
		if !ok {
			log.Debug("unrecognized input", zap.String("line", sc.Text()))
			continue
		}
		sink.Push(in)
	}
	return sc.Err()
}
