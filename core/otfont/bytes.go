package otfont

import "errors"

/*
We replicate a small amount of the Go core team's sfnt-parsing code here,
available from https://github.com/golang/image/tree/master/font/sfnt. I
understand it's legal to do so, as long as the license information stays
intact — this approach, and this note, are carried over from tyse's
core/font/ot/bytes.go, which does the same thing for the same reason: we
need raw, in-memory byte-offset access to a sub-table (the MATH table)
that golang.org/x/image/font/sfnt doesn't expose through its public API.

// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

The LICENSE file mentioned is replicated as GO-LICENSE at the root
directory of this module.
*/

var errBufferBounds = errors.New("mathtyp/otfont: buffer bounds error")

func u16(b []byte) uint16 {
	_ = b[1]
	return uint16(b[0])<<8 | uint16(b[1])<<0
}

func i16(b []byte) int16 {
	return int16(u16(b))
}

func u32(b []byte) uint32 {
	_ = b[3]
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])<<0
}

// fontBinSegm is a segment of in-memory font-table bytes, mirroring
// tyse's fontBinSegm: we skip the io.ReaderAt model since the whole MATH
// table is small and already resident.
type fontBinSegm []byte

func (b fontBinSegm) view(offset, length int) ([]byte, error) {
	if offset < 0 || length < 0 || offset+length < offset {
		return nil, errBufferBounds
	}
	if offset+length > len(b) {
		return nil, errBufferBounds
	}
	return b[offset : offset+length], nil
}

func (b fontBinSegm) u16(i int) (uint16, error) {
	buf, err := b.view(i, 2)
	if err != nil {
		return 0, err
	}
	return u16(buf), nil
}

func (b fontBinSegm) i16(i int) (int16, error) {
	v, err := b.u16(i)
	return int16(v), err
}

func (b fontBinSegm) u32(i int) (uint32, error) {
	buf, err := b.view(i, 4)
	if err != nil {
		return 0, err
	}
	return u32(buf), nil
}

// mathValueRecord is an OpenType MathValueRecord: a signed design-unit
// value plus an optional device-table offset. We only ever read the
// value; device tables (hinting adjustments for specific pixel sizes) are
// not meaningful to a vector layout engine and are skipped, matching
// tyse's own policy of ignoring hint-only tables (core/font/ot/gpos.go).
func (b fontBinSegm) mathValueRecord(offset int) (int16, error) {
	return b.i16(offset)
}
