package stream

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/bodgit/tilevid/tile"
	"github.com/bodgit/tilevid/vdp"
)

// Reader decodes a compressed video stream by replaying its writes into
// a simulated controller and reconstructing the visible screen after
// every command.
type Reader struct {
	r      io.Reader
	offset int64

	lib *vdp.TileLibrary
	tm  *vdp.TileMap
	x   int
	y   int

	current *vdp.Screen
	repeat  uint16
	done    bool

	stats Stats
}

// NewReader returns a Reader decoding from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{
		r:   r,
		lib: vdp.NewTileLibrary(),
		tm:  vdp.NewTileMap(),
	}
}

func (d *Reader) corrupt(format string, a ...interface{}) error {
	return fmt.Errorf("%w: %s at offset %d", ErrCorrupt, fmt.Sprintf(format, a...), d.offset)
}

func (d *Reader) read(b []byte) error {
	n, err := io.ReadFull(d.r, b)
	d.offset += int64(n)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return d.corrupt("truncated stream")
	}
	return err
}

func (d *Reader) word() (uint16, error) {
	var b [2]byte
	if err := d.read(b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b[:]), nil
}

// Next returns the next reconstructed screen, or io.EOF once the end
// marker has been consumed.
func (d *Reader) Next() (*vdp.Screen, error) {
	if d.repeat > 0 {
		d.repeat--
		return d.current, nil
	}
	if d.done {
		return nil, io.EOF
	}

	w0, err := d.word()
	if err != nil {
		return nil, err
	}

	switch w0 {
	case wordEnd0:
		w1, err := d.word()
		if err != nil {
			return nil, err
		}
		if w1 != wordEnd1 {
			return nil, d.corrupt("bad end marker %#04x", w1)
		}
		d.done = true
		return nil, io.EOF

	case wordDelay:
		n, err := d.word()
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, fmt.Errorf("%w at offset %d", ErrInvalidDelay, d.offset)
		}
		d.stats.Delays++
		d.stats.Frames += int(n)
		if d.current == nil {
			if d.current, err = d.materialize(); err != nil {
				return nil, err
			}
		}
		d.repeat = n - 1
		return d.current, nil

	default:
		return d.update(w0)
	}
}

func (d *Reader) update(x uint16) (*vdp.Screen, error) {
	if int(x) >= vdp.VirtualWidth {
		return nil, d.corrupt("x offset %d out of range", x)
	}

	y, err := d.word()
	if err != nil {
		return nil, err
	}
	if int(y) >= vdp.VirtualHeight {
		return nil, d.corrupt("y offset %d out of range", y)
	}

	l, err := d.word()
	if err != nil {
		return nil, err
	}
	if int(l) > vdp.NumSlots {
		return nil, d.corrupt("%d library writes", l)
	}

	m, err := d.word()
	if err != nil {
		return nil, err
	}
	if int(m) > vdp.NumCells {
		return nil, d.corrupt("%d tilemap writes", m)
	}

	for i := 0; i < int(l); i++ {
		var b [4]byte
		if err := d.read(b[:]); err != nil {
			return nil, err
		}
		slot := binary.LittleEndian.Uint32(b[:])
		if slot >= vdp.NumSlots {
			return nil, d.corrupt("library slot %d out of range", slot)
		}
		var pattern [tile.Size]byte
		if err := d.read(pattern[:]); err != nil {
			return nil, err
		}
		t, err := tile.New(pattern[:])
		if err != nil {
			return nil, err
		}
		d.lib.Set(int(slot), t)
	}

	for i := 0; i < int(m); i++ {
		var b [4]byte
		if err := d.read(b[:]); err != nil {
			return nil, err
		}
		c, err := vdp.NewCell(int(b[0]), int(b[1]))
		if err != nil {
			return nil, d.corrupt("cell (%d, %d) out of range", b[0], b[1])
		}
		d.tm.Set(c, b[2])
	}

	d.stats.Updates++
	d.stats.Frames++
	d.stats.LibWrites += int(l)
	d.stats.MapWrites += int(m)

	d.x, d.y = int(x), int(y)
	if d.current, err = d.materialize(); err != nil {
		return nil, err
	}
	return d.current, nil
}

// materialize builds a screen from the controller state restricted to
// the current viewport.
func (d *Reader) materialize() (*vdp.Screen, error) {
	positions := make(map[tile.Tile][]vdp.Cell)
	for _, c := range vdp.Visible(d.x, d.y) {
		t := d.lib.Tile(int(d.tm.Slot(c)))
		positions[t] = append(positions[t], c)
	}
	return vdp.NewScreen(d.x, d.y, positions)
}

// Decode reads a complete stream and returns the reconstructed frame
// sequence.
func Decode(r io.Reader) ([]*vdp.Screen, error) {
	d := NewReader(r)

	var frames []*vdp.Screen
	for {
		s, err := d.Next()
		if err == io.EOF {
			return frames, nil
		}
		if err != nil {
			return nil, err
		}
		frames = append(frames, s)
	}
}
