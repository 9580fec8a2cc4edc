package stream

import "io"

// Stats summarizes a stream's commands.
type Stats struct {
	// Updates and Delays count commands
	Updates int
	Delays  int
	// Frames counts output frames including delay repeats
	Frames int
	// LibWrites and MapWrites are totals across all updates
	LibWrites int
	MapWrites int
	// Bytes is the stream length up to and including the end marker
	Bytes int64
}

// Stat decodes a complete stream, discarding the frames, and returns its
// statistics.
func Stat(r io.Reader) (*Stats, error) {
	d := NewReader(r)
	for {
		_, err := d.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	stats := d.stats
	stats.Bytes = d.offset
	return &stats, nil
}
