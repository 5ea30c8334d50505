package source

import (
	"context"
	"os"

	"github.com/pkg/errors"

	"github.com/dwikikusuma/cartsim/internal/catalog/domain"
)

type File struct {
	path string
}

func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Name() string { return f.path }

func (f *File) Fetch(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, errors.Wrap(err, "read catalog file")
	}
	return Decode(data, FormatFor(f.path))
}
