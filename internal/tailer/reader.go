package tailer

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"unicode/utf8"
)

// lineReader yields complete lines from a growing file. Bytes after the last
// newline are held back until the rest of the line arrives.
type lineReader struct {
	r       *bufio.Reader
	partial []byte
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReaderSize(r, 64*1024)}
}

// next returns the next complete line. ok is false when the reader is at the
// end of the currently written content.
func (lr *lineReader) next() (line string, ok bool, err error) {
	chunk, err := lr.r.ReadBytes('\n')
	lr.partial = append(lr.partial, chunk...)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", false, nil
		}
		return "", false, err
	}
	line = decode(lr.partial[:len(lr.partial)-1])
	lr.partial = lr.partial[:0]
	return line, true, nil
}

// flush returns the held back partial line, if any.
func (lr *lineReader) flush() (string, bool) {
	if len(lr.partial) == 0 {
		return "", false
	}
	line := decode(lr.partial)
	lr.partial = lr.partial[:0]
	return line, true
}

func decode(b []byte) string {
	b = bytes.TrimSuffix(b, []byte{'\r'})
	if utf8.Valid(b) {
		return string(b)
	}
	return string(bytes.ToValidUTF8(b, []byte("�")))
}
