/*
Package tilevid compresses sequences of monochrome frames into the
compact write stream replayed by a tile-based video controller.

The controller exposes two writable memory regions, a 256 entry tile
pattern library and a 50 by 100 tilemap of library indices, behind a
wrapping 400 by 300 viewport. Encoding drives a simulated controller
through each target frame and records the writes; the resulting stream
replays bit for bit.
*/
package tilevid

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	"github.com/bodgit/tilevid/bitmap"
	"github.com/bodgit/tilevid/stream"
	"github.com/bodgit/tilevid/vdp"
)

// TileVid encodes playlists into stream files, optionally caching the
// results in a database so unchanged inputs are not re-encoded.
type TileVid struct {
	db     *StreamDB
	logger *log.Logger
}

// New returns a TileVid using the given database file, or no cache when
// the file is empty.
func New(dbFile string, logger *log.Logger) (*TileVid, error) {
	m := &TileVid{
		logger: logger,
	}
	if dbFile != "" {
		db, err := NewStreamDB(dbFile)
		if err != nil {
			return nil, err
		}
		m.db = db
	}
	return m, nil
}

// Close releases the cache database, if any.
func (m *TileVid) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

func loadFrames(playlist string, entries []PlaylistEntry) ([]*vdp.Screen, error) {
	dir := filepath.Dir(playlist)

	var frames []*vdp.Screen
	for _, e := range entries {
		f, err := os.Open(filepath.Join(dir, e.File))
		if err != nil {
			return nil, err
		}
		img, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.File, err)
		}

		s, err := bitmap.ToScreen(img)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.File, err)
		}

		// One shared screen instance per held frame
		for i := 0; i < e.Frames; i++ {
			frames = append(frames, s)
		}
	}
	return frames, nil
}

// EncodeFile compresses the playlist into a stream written to output,
// consulting the cache first when one is configured.
func (m *TileVid) EncodeFile(playlist, output string) error {
	entries, err := ParsePlaylist(playlist)
	if err != nil {
		return err
	}

	var key string
	if m.db != nil {
		if key, err = crcPlaylist(playlist, entries); err != nil {
			return err
		}
		data, err := m.db.Get(key)
		if err != nil {
			return err
		}
		if data != nil {
			m.logger.Printf("Cache hit for \"%s\", with CRC \"%s\"\n", playlist, key)
			return ioutil.WriteFile(output, data, 0644)
		}
	}

	frames, err := loadFrames(playlist, entries)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := stream.Encode(&buf, frames); err != nil {
		return err
	}

	if m.db != nil {
		if err := m.db.Put(key, buf.Bytes()); err != nil {
			return err
		}
	}

	m.logger.Printf("Encoded %d frames from \"%s\" into %d bytes\n", len(frames), playlist, buf.Len())

	return ioutil.WriteFile(output, buf.Bytes(), 0644)
}

// Import validates an existing stream file and stores it in the cache
// keyed by its content.
func (m *TileVid) Import(file string) error {
	if m.db == nil {
		return errors.New("tilevid: no database configured")
	}

	b, err := ioutil.ReadFile(file)
	if err != nil {
		return err
	}
	if _, err := stream.Decode(bytes.NewReader(b)); err != nil {
		return err
	}

	return m.db.Put(crcBytes(b), b)
}
