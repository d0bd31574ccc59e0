/*
A tool to derive type declarations from a set of example JSON values.
Copyright (C) 2025  Marcus Perlick

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU Affero General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU Affero General Public License for more details.

You should have received a copy of the GNU Affero General Public License
along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package typegen

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"git.fractalqb.de/fractalqb/eloc"
)

const SnapshotVersion = 0

const (
	snapOptional byte = 1 << iota
	snapChildren
)

// SnapshotIO writes and reads expected schema trees in a compact binary
// format. Strings that occur more than once are written only once.
type SnapshotIO struct {
	buf              []byte
	strs             map[string]int64
	sids             map[int64]string
	StrCount, StrDup int
	// MaxString limits the length of strings read, 0 means 64KiB.
	MaxString int
}

func (sio *SnapshotIO) Write(w io.Writer, exp Expect) error {
	if _, err := fmt.Fprintf(w, "TGEN%d\n", SnapshotVersion); err != nil {
		return eloc.At(err)
	}
	if sio.strs == nil {
		sio.strs = make(map[string]int64)
	} else {
		clear(sio.strs)
	}
	sio.StrCount, sio.StrDup = 0, 0
	return sio.wrExpect(w, exp)
}

func (sio *SnapshotIO) Read(r io.Reader) (Expect, error) {
	br := bufio.NewReader(r)
	if err := sio.rdHeader(br); err != nil {
		return nil, err
	}
	if sio.sids == nil {
		sio.sids = make(map[int64]string)
	} else {
		clear(sio.sids)
	}
	sio.StrCount, sio.StrDup = 0, 0
	return sio.rdExpect(br, 0)
}

func (sio *SnapshotIO) wrExpect(w io.Writer, exp Expect) error {
	sio.buf = binary.AppendUvarint(sio.buf[:0], uint64(len(exp)))
	if _, err := w.Write(sio.buf); err != nil {
		return eloc.At(err)
	}
	for _, e := range exp {
		if err := sio.wrString(w, e.Name); err != nil {
			return err
		}
		if err := sio.wrString(w, e.Type); err != nil {
			return err
		}
		var flags byte
		if e.Optional {
			flags |= snapOptional
		}
		if e.Children != nil {
			flags |= snapChildren
		}
		sio.buf = append(sio.buf[:0], flags)
		if _, err := w.Write(sio.buf); err != nil {
			return eloc.At(err)
		}
		if e.Children != nil {
			if err := sio.wrExpect(w, e.Children); err != nil {
				return err
			}
		}
	}
	return nil
}

func (sio *SnapshotIO) rdExpect(r *bufio.Reader, depth int) (Expect, error) {
	if depth > DefaultMaxDepth {
		return nil, eloc.Errorf("snapshot nested deeper than %d", DefaultMaxDepth)
	}
	n, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, eloc.Errorf("expectation count: %w", err)
	}
	res := make(Expect, 0, min(n, 1024))
	for i := range n {
		var e Expected
		if e.Name, err = sio.rdString(r); err != nil {
			return nil, fmt.Errorf("expectation %d name: %w", i, err)
		}
		if e.Type, err = sio.rdString(r); err != nil {
			return nil, fmt.Errorf("expectation '%s' type: %w", e.Name, err)
		}
		flags, err := r.ReadByte()
		if err != nil {
			return nil, eloc.Errorf("expectation '%s' flags: %w", e.Name, err)
		}
		e.Optional = flags&snapOptional != 0
		if flags&snapChildren != 0 {
			if e.Children, err = sio.rdExpect(r, depth+1); err != nil {
				return nil, err
			}
		}
		res = append(res, e)
	}
	return res, nil
}

func (sio *SnapshotIO) rdHeader(r *bufio.Reader) error {
	line, err := r.ReadString('\n')
	if err != nil {
		return eloc.At(err)
	}
	line = line[:len(line)-1]
	if !strings.HasPrefix(line, "TGEN") {
		return eloc.New("not a typegen snapshot")
	}
	if v, err := strconv.Atoi(line[4:]); err != nil {
		return eloc.Errorf("snapshot header version: %w", err)
	} else if v != SnapshotVersion {
		return eloc.Errorf("unsupported snapshot version %d", v)
	}
	return nil
}

func (sio *SnapshotIO) wrString(w io.Writer, s string) error {
	sio.StrCount++
	if id := sio.strs[s]; id > 0 {
		sio.StrDup++
		sio.buf = binary.AppendVarint(sio.buf[:0], id)
		_, err := w.Write(sio.buf)
		return eloc.At(err)
	}
	id := int64(len(sio.strs) + 1)
	sio.strs[s] = id
	sio.buf = binary.AppendVarint(sio.buf[:0], -id)
	sio.buf = binary.AppendUvarint(sio.buf, uint64(len(s)))
	sio.buf = append(sio.buf, s...)
	_, err := w.Write(sio.buf)
	return eloc.At(err)
}

func (sio *SnapshotIO) rdString(r *bufio.Reader) (string, error) {
	sio.StrCount++
	id, err := binary.ReadVarint(r)
	if err != nil {
		return "", eloc.At(err)
	}
	switch {
	case id > 0:
		s, ok := sio.sids[id]
		if !ok {
			return "", eloc.Errorf("unknown string id %d", id)
		}
		sio.StrDup++
		return s, nil
	case id < 0:
		l, err := binary.ReadUvarint(r)
		if err != nil {
			return "", eloc.At(err)
		}
		maxl := sio.MaxString
		if maxl <= 0 {
			maxl = 1 << 16
		}
		if l > uint64(maxl) {
			return "", eloc.Errorf("string length %d exceeds %d", l, maxl)
		}
		sio.buf = slices.Grow(sio.buf[:0], int(l))[:int(l)]
		if _, err := io.ReadFull(r, sio.buf); err != nil {
			return "", eloc.At(err)
		}
		s := string(sio.buf)
		sio.sids[-id] = s
		return s, nil
	}
	return "", eloc.New("invalid string id")
}
