package msjson

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// maxFileSize bounds ParseFile input. Larger files are rejected outright
// rather than read partially.
const maxFileSize = 10 << 20

// ParseFile reads path fully into memory and parses it with Parse.
// Files larger than 10 MiB are rejected as a memory error.
func ParseFile(path string, opts *Options) (*Value, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, errors.Wrapf(err, "stat %s", path)
	}
	if fi.Size() > maxFileSize {
		return nil, errors.Wrapf(ErrMemory, "%s is %d bytes, limit is %d", path, fi.Size(), maxFileSize)
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return Parse(data, opts)
}

// WriteFile serializes v with the default allocator and writes it to path.
func WriteFile(v *Value, path string) error {
	data, err := Serialize(v, nil)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}
