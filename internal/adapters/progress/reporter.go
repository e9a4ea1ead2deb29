// Package progress reports scan progress through a progrock recording.
package progress

import (
	"sync"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/brokenpkg/internal/core/domain"
	"go.trai.ch/brokenpkg/internal/core/ports"
)

// FileCounter receives per-file progress that is not part of the vertex stream.
type FileCounter interface {
	SetTotal(packages int)
	AddFile()
}

var _ ports.Progress = (*Reporter)(nil)

// Reporter implements ports.Progress by recording one progrock vertex per package.
type Reporter struct {
	w     progrock.Writer
	rec   *progrock.Recorder
	files FileCounter

	closeOnce sync.Once
}

// NewReporter creates a Reporter writing vertices to w.
// files is optional and receives file and total counts.
func NewReporter(w progrock.Writer, files FileCounter) *Reporter {
	return &Reporter{
		w:     w,
		rec:   progrock.NewRecorder(w),
		files: files,
	}
}

// Start announces the number of packages that will be processed.
func (r *Reporter) Start(totalPackages int) {
	if r.files != nil {
		r.files.SetTotal(totalPackages)
	}
}

// FileDone records that one owned file has been processed.
func (r *Reporter) FileDone() {
	if r.files != nil {
		r.files.AddFile()
	}
}

// PackageDone completes the package's vertex.
func (r *Reporter) PackageDone(pkg domain.Package, err error) {
	name := pkg.Name.String()
	v := r.rec.Vertex(digest.FromString(name), name)
	v.Done(err)
}

// Finish closes the underlying writer.
func (r *Reporter) Finish() {
	r.closeOnce.Do(func() {
		_ = r.w.Close()
	})
}

// Noop implements ports.Progress without output.
type Noop struct{}

var _ ports.Progress = Noop{}

// Start does nothing.
func (Noop) Start(int) {}

// FileDone does nothing.
func (Noop) FileDone() {}

// PackageDone does nothing.
func (Noop) PackageDone(domain.Package, error) {}

// Finish does nothing.
func (Noop) Finish() {}
