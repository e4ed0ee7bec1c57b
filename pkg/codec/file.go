package codec

import (
	"fmt"
	"os"

	"github.com/matzehuels/quiverview/pkg/errors"
	"github.com/matzehuels/quiverview/pkg/quiver"
)

// ReadFile reads a quiver from the file at path.
// A missing file is reported as FILE_NOT_FOUND; malformed content as
// PARSE_ERROR.
func ReadFile(path string, opts ...quiver.Option) (*quiver.Quiver, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, opts...)
}

// WriteFile writes q to a file at path.
// The file is created with 0644 permissions.
func WriteFile(q *quiver.Quiver, path string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(q, f)
}
