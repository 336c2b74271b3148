// Package input loads the text the resub command rewrites.
//
// Regular files are mapped read-only into memory where the platform allows
// it, so rewriting a large file does not first copy it onto the heap. The
// engine never modifies its subject, which is what makes a read-only
// mapping safe. Standard input is read fully.
package input

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
)

// Stdin is the name that selects standard input.
const Stdin = "-"

// ErrInteractive is returned when input would come from a terminal.
var ErrInteractive = errors.New("refusing to read input from a terminal; pass a file or pipe text in")

// Source is loaded input. Data stays valid until Close.
type Source struct {
	Name string
	Data []byte

	release func() error
}

// Close releases the memory behind Data.
func (s *Source) Close() error {
	release := s.release
	s.release = nil
	s.Data = nil
	if release == nil {
		return nil
	}
	return release()
}

// Open loads the named file, or standard input when name is "" or "-".
func Open(name string) (*Source, error) {
	if name == "" || name == Stdin {
		if IsTerminal(os.Stdin) {
			return nil, ErrInteractive
		}
		return Read("<stdin>", os.Stdin)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open %s", name)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, errors.Wrapf(err, "could not stat %s", name)
	}
	if !info.Mode().IsRegular() || info.Size() == 0 {
		// Pipes, devices and empty files cannot be mapped.
		return Read(name, f)
	}

	data, release, err := mapFile(f, info.Size())
	if err != nil {
		return nil, errors.Wrapf(err, "could not map %s", name)
	}
	return &Source{Name: name, Data: data, release: release}, nil
}

// Read loads everything from r.
func Read(name string, r io.Reader) (*Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read %s", name)
	}
	return &Source{Name: name, Data: data}, nil
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
