package tilevid

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamDB(t *testing.T) {
	dir, err := ioutil.TempDir("", "tilevid")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	db, err := NewStreamDB(filepath.Join(dir, "tilevid.db"))
	require.NoError(t, err)
	defer db.Close()

	data, err := db.Get("DEADBEEF")
	require.NoError(t, err)
	assert.Nil(t, data)

	require.NoError(t, db.Put("DEADBEEF", []byte{1, 2, 3}))

	data, err = db.Get("DEADBEEF")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)

	// replacing an entry keeps the key unique
	require.NoError(t, db.Put("DEADBEEF", []byte{4, 5, 6}))

	data, err = db.Get("DEADBEEF")
	require.NoError(t, err)
	assert.Equal(t, []byte{4, 5, 6}, data)
}
