package deliver

import (
	"context"
	"io"
	"os"
	"sync"
	"time"
)

// Lease is a transient staged copy of a file. It exists from Acquire until
// Release; the download copies from it in between.
type Lease struct {
	path string
	once sync.Once
	err  error
}

// Acquire stages data in a new temporary file under dir.
func Acquire(dir string, data []byte) (*Lease, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	f, err := os.CreateTemp(dir, "lookbook-*.png.part")
	if err != nil {
		return nil, err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return nil, err
	}
	return &Lease{path: f.Name()}, nil
}

// Path returns the staged file.
func (l *Lease) Path() string { return l.path }

// Open opens the staged file for reading.
func (l *Lease) Open() (io.ReadCloser, error) {
	return os.Open(l.path)
}

// Release removes the staged file after grace has elapsed. A cancelled
// context shortens the wait but still removes the file. Release is safe to
// call more than once.
func (l *Lease) Release(ctx context.Context, grace time.Duration) error {
	l.once.Do(func() {
		if grace > 0 {
			t := time.NewTimer(grace)
			select {
			case <-t.C:
			case <-ctx.Done():
				t.Stop()
			}
		}
		if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
			l.err = err
		}
	})
	return l.err
}
