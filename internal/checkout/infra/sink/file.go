package sink

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/dwikikusuma/cartsim/internal/checkout/domain"
)

// File writes the receipt text to dir/<FileName>, replacing any earlier
// ticket.
type File struct {
	dir string
}

func NewFile(dir string) *File {
	if dir == "" {
		dir = "."
	}
	return &File{dir: dir}
}

func (f *File) Path(r domain.Receipt) string {
	return filepath.Join(f.dir, r.FileName)
}

func (f *File) Deliver(_ context.Context, r domain.Receipt) error {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return errors.Wrapf(err, "create receipt dir %s", f.dir)
	}
	return errors.Wrapf(os.WriteFile(f.Path(r), []byte(r.Text), 0o644), "write receipt %s", r.ID)
}
