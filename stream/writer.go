package stream

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/bodgit/tilevid/encoder"
	"github.com/bodgit/tilevid/vdp"
)

// Writer serializes per-frame updates into a compressed video stream.
// Idle frames accumulate into a delay counter that is flushed ahead of
// the next update, when it saturates, and at Close.
type Writer struct {
	w     *bufio.Writer
	delay uint16
}

// NewWriter returns a Writer emitting to w. The caller must Close it to
// terminate the stream.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		w: bufio.NewWriter(w),
	}
}

func (sw *Writer) words(ws ...uint16) error {
	return binary.Write(sw.w, binary.LittleEndian, ws)
}

func (sw *Writer) flushDelay() error {
	if sw.delay == 0 {
		return nil
	}
	n := sw.delay
	sw.delay = 0
	return sw.words(wordDelay, n)
}

// WriteUpdate appends one frame to the stream. A nil update marks an
// idle frame and joins the pending delay.
func (sw *Writer) WriteUpdate(u *encoder.ScreenUpdate) error {
	if u == nil {
		if sw.delay == maxDelay {
			if err := sw.flushDelay(); err != nil {
				return err
			}
		}
		sw.delay++
		return nil
	}

	if err := sw.flushDelay(); err != nil {
		return err
	}

	if err := sw.words(uint16(u.X), uint16(u.Y), uint16(len(u.LibWrites)), uint16(len(u.MapWrites))); err != nil {
		return err
	}

	for _, slot := range u.LibSlots() {
		if err := binary.Write(sw.w, binary.LittleEndian, uint32(slot)); err != nil {
			return err
		}
		t := u.LibWrites[slot]
		if _, err := sw.w.Write(t[:]); err != nil {
			return err
		}
	}

	for _, c := range u.MapCells() {
		if _, err := sw.w.Write([]byte{c.Row, c.Col, u.MapWrites[c], 0}); err != nil {
			return err
		}
	}

	return nil
}

// Close flushes any pending delay and terminates the stream.
func (sw *Writer) Close() error {
	if err := sw.flushDelay(); err != nil {
		return err
	}
	if err := sw.words(wordEnd0, wordEnd1); err != nil {
		return err
	}
	return sw.w.Flush()
}

// Encode compresses the frame sequence to w.
func Encode(w io.Writer, frames []*vdp.Screen) error {
	updates, err := encoder.EncodeFrames(frames)
	if err != nil {
		return err
	}

	sw := NewWriter(w)
	for _, u := range updates {
		if err := sw.WriteUpdate(u); err != nil {
			return err
		}
	}
	return sw.Close()
}
