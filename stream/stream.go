/*
Package stream implements the compressed video stream codec.

A stream is a sequence of commands, every multi-byte integer little
endian. An update command carries the viewport offsets followed by the
library and tilemap writes for one frame:

	x (u16, <800)  y (u16, <600)  L (u16, <=256)  M (u16, <=5000)
	L library writes: slot (u8) 0 0 0, then 12 pattern bytes
	M tilemap writes: row (u8) col (u8) slot (u8) 0

A delay command 0xBABE n asserts n (1..65535) output frames equal to the
state after the prior update. The stream terminates with 0xBEEF 0xCAFE.
An update's first word is an x offset below 800 so it can never collide
with either magic word.

The writer coalesces idle frames into delay commands; the reader drives a
simulated controller and reconstructs the screen after every command, so
a decoded stream reproduces the encoder's input exactly.
*/
package stream

import "errors"

const (
	wordDelay = 0xbabe
	wordEnd0  = 0xbeef
	wordEnd1  = 0xcafe

	maxDelay = 0xffff
)

var (
	// ErrCorrupt is returned for a truncated or malformed stream.
	ErrCorrupt = errors.New("stream: corrupt")
	// ErrInvalidDelay is returned for a delay command of zero frames.
	ErrInvalidDelay = errors.New("stream: zero delay")
)
