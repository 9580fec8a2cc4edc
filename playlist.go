package tilevid

import (
	"errors"
	"fmt"

	"github.com/vchimishuk/chub/cue"
)

const (
	// cue sheet timestamps count 75 frames per second
	cueRate = 75
	// the controller replays 20 frames per second
	outputRate = 20
)

// ErrEmptyPlaylist is returned for a cue sheet naming no files.
var ErrEmptyPlaylist = errors.New("tilevid: playlist names no files")

// PlaylistEntry names one frame image and how many output frames it is
// held for.
type PlaylistEntry struct {
	File   string
	Frames int
}

func startTime(file *cue.File) (int, error) {
	if len(file.Tracks) == 0 {
		return 0, fmt.Errorf("tilevid: \"%s\" has no tracks", file.Name)
	}

	track := file.Tracks[0]
	for _, index := range track.Indexes {
		if index.Number != 1 {
			continue
		}
		return (index.Time.Min*60+index.Time.Sec)*cueRate + index.Time.Frames, nil
	}

	return 0, fmt.Errorf("tilevid: \"%s\" has no index 01", file.Name)
}

// ParsePlaylist reads an animation playlist written as a cue sheet: each
// FILE names a frame image and its first track's INDEX 01 gives the time
// it appears. The gap to the next entry, scaled from the cue rate to the
// output rate, is how long the image holds; the final image holds for
// one frame.
func ParsePlaylist(file string) ([]PlaylistEntry, error) {
	sheet, err := cue.ParseFile(file)
	if err != nil {
		return nil, err
	}

	if len(sheet.Files) == 0 {
		return nil, ErrEmptyPlaylist
	}

	starts := make([]int, len(sheet.Files))
	entries := make([]PlaylistEntry, len(sheet.Files))
	for i, f := range sheet.Files {
		if starts[i], err = startTime(f); err != nil {
			return nil, err
		}
		if i > 0 && starts[i] < starts[i-1] {
			return nil, fmt.Errorf("tilevid: \"%s\" starts before its predecessor", f.Name)
		}
		entries[i] = PlaylistEntry{File: f.Name, Frames: 1}
	}

	for i := range entries[:len(entries)-1] {
		if frames := (starts[i+1] - starts[i]) * outputRate / cueRate; frames > 1 {
			entries[i].Frames = frames
		}
	}

	return entries, nil
}
