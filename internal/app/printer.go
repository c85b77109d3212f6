package app

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/five82/logtailer/internal/logtail"
	"github.com/five82/logtailer/internal/tailer"
)

// Printer writes tailed lines to Out and lifecycle problems to Err.
type Printer struct {
	Out         io.Writer
	Err         io.Writer
	Path        string
	Logger      *zap.Logger
	Highlighter *logtail.Highlighter // nil prints lines verbatim
}

var _ tailer.Observer = (*Printer)(nil)

func (p *Printer) OnLine(line string) {
	if p.Highlighter != nil {
		line = p.Highlighter.Line(line)
	}
	fmt.Fprintln(p.Out, line)
}

func (p *Printer) OnFileNotFound() {
	p.logger().Debug("file not found", zap.String("path", p.Path))
	fmt.Fprintf(p.Err, "logtailer: %s: file not found\n", p.Path)
}

func (p *Printer) OnFileRemoved() {
	p.logger().Debug("file removed", zap.String("path", p.Path))
	fmt.Fprintf(p.Err, "logtailer: %s: file removed\n", p.Path)
}

func (p *Printer) OnException(err error) {
	p.logger().Debug("tail error", zap.String("path", p.Path), zap.Error(err))
	fmt.Fprintf(p.Err, "logtailer: %v\n", err)
}

func (p *Printer) logger() *zap.Logger {
	if p.Logger == nil {
		return zap.NewNop()
	}
	return p.Logger
}
