package export

import (
	"io"
	"os"
)

var createFile = func(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

// writeFile creates path and runs write against it, returning the Close
// error when write itself succeeded.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}
