package report

import (
	"io"

	"github.com/cheggaaa/pb/v3"
)

// Progress renders a progress bar while files are compared. The
// expected total is the registry size; files without a baseline grow
// the total on the fly since they were not in the registry.
type Progress struct {
	bar *pb.ProgressBar
}

// NewProgress creates and starts a progress bar for the expected
// number of files
func NewProgress(expected int, out io.Writer) *Progress {
	bar := pb.New(expected)
	if out != nil {
		bar.SetWriter(out)
	}
	bar.Start()
	return &Progress{bar: bar}
}

// Step advances the bar by one compared file
func (p *Progress) Step(relPath string) {
	if p.bar.Current() >= p.bar.Total() {
		p.bar.SetTotal(p.bar.Current() + 1)
	}
	p.bar.Increment()
}

// Finish completes and removes the bar
func (p *Progress) Finish() {
	p.bar.Finish()
}
