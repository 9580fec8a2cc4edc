package tilevid

import (
	"fmt"
	"hash"
	"hash/crc32"
	"io"
	"os"
	"path/filepath"
)

func crcAdd(h hash.Hash32, file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(h, f)
	return err
}

// crcPlaylist hashes the playlist and every image it references so a
// cache entry goes stale when any input changes.
func crcPlaylist(playlist string, entries []PlaylistEntry) (string, error) {
	h := crc32.NewIEEE()

	if err := crcAdd(h, playlist); err != nil {
		return "", err
	}

	dir := filepath.Dir(playlist)
	for _, e := range entries {
		if err := crcAdd(h, filepath.Join(dir, e.File)); err != nil {
			return "", err
		}
	}

	return fmt.Sprintf("%.*X", crc32.Size<<1, h.Sum(nil)), nil
}

func crcBytes(b []byte) string {
	return fmt.Sprintf("%0*X", crc32.Size<<1, crc32.ChecksumIEEE(b))
}
