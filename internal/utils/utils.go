package utils

import (
	"io"
	"os"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// HashFile returns the xxhash checksum of the file's contents together with
// its size in bytes.
func HashFile(path string) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	d := xxhash.New()
	n, err := io.Copy(d, f)
	if err != nil {
		return "", 0, err
	}
	return strconv.FormatUint(d.Sum64(), 32), n, nil
}
