package filex

import (
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/arcaives/internal/common"
)

// ReadLimited reads the regular file at path. Files larger than max bytes are
// rejected with common.ErrPayloadTooLarge without reading them.
func ReadLimited(path string, max int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("%s: not a regular file", path)
	}
	if fi.Size() > max {
		return nil, fmt.Errorf("%w: %s is %d bytes, limit %d", common.ErrPayloadTooLarge, path, fi.Size(), max)
	}

	// the file may grow between Stat and Read
	data, err := io.ReadAll(io.LimitReader(f, max+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if int64(len(data)) > max {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", common.ErrPayloadTooLarge, path, max)
	}
	return data, nil
}
