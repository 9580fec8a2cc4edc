package tilevid

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCRCBytes(t *testing.T) {
	assert.Equal(t, "00000000", crcBytes(nil))
	assert.Equal(t, "3610A686", crcBytes([]byte("hello")))
}

func TestCRCPlaylist(t *testing.T) {
	dir, err := ioutil.TempDir("", "tilevid")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	playlist := filepath.Join(dir, "video.cue")
	require.NoError(t, ioutil.WriteFile(playlist, []byte("sheet"), 0644))
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "frame0.png"), []byte("image"), 0644))

	entries := []PlaylistEntry{{File: "frame0.png", Frames: 1}}

	crc, err := crcPlaylist(playlist, entries)
	require.NoError(t, err)
	assert.Len(t, crc, 8)

	// changing a referenced image changes the key
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "frame0.png"), []byte("other"), 0644))
	crc2, err := crcPlaylist(playlist, entries)
	require.NoError(t, err)
	assert.NotEqual(t, crc, crc2)

	// a missing image is an error
	entries = append(entries, PlaylistEntry{File: "frame1.png", Frames: 1})
	_, err = crcPlaylist(playlist, entries)
	assert.Error(t, err)
}
