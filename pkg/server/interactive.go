// SPDX-License-Identifier: GPL-2.0 OR BSD-3-Clause
package server

import (
	"bufio"
	"fmt"
	"io"

	"github.com/shimson94/multithreaded-firewall-server/pkg/engine"
)

// RunInteractive processes one request per input line until in is
// exhausted, writing each response followed by a newline. No
// concurrency is involved; lines are handled one at a time on the
// calling goroutine.
//
// A line longer than the request buffer is split at the buffer size
// and the remainder handled as the next line, so an oversized request
// still gets a response and the session continues.
func RunInteractive(eng engine.Service, in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)

	for {
		line, err := readRequestLine(reader)
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("failed to read request: %w", err)
		}

		resp := eng.Process(line)
		if _, err := fmt.Fprintln(out, resp); err != nil {
			return fmt.Errorf("failed to write response: %w", err)
		}
	}
}

// readRequestLine reads up to requestBufferSize-1 bytes, stopping at a
// newline (consumed, not returned). At EOF any partial line is returned
// first; io.EOF surfaces on the following call.
func readRequestLine(r *bufio.Reader) (string, error) {
	buf := make([]byte, 0, requestBufferSize-1)
	for len(buf) < requestBufferSize-1 {
		c, err := r.ReadByte()
		if err != nil {
			if len(buf) > 0 {
				return string(buf), nil
			}
			return "", err
		}
		if c == '\n' {
			return string(buf), nil
		}
		buf = append(buf, c)
	}
	return string(buf), nil
}
