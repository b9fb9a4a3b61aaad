package vm

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// LoadImage reads an LC-3 program image from r: the first big-endian
// word is the load origin, and every subsequent big-endian word is
// stored contiguously into mem starting at that origin. The word
// count is clamped to 65536-origin; anything beyond that is ignored.
// It returns the origin the image was loaded at.
func LoadImage(mem *Memory, r io.Reader) (Word, error) {
	var header [2]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return 0, err
	}
	origin := binary.BigEndian.Uint16(header[:])

	maxWords := MemorySize - int(origin)
	addr := origin
	var buf [2]byte
	for i := 0; i < maxWords; i++ {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				break
			}
			return origin, err
		}
		mem.Write(addr, binary.BigEndian.Uint16(buf[:]))
		addr++
	}
	return origin, nil
}

// LoadImageFile opens path and loads it into mem via LoadImage,
// wrapping any failure to open or read the file with the path so
// callers can report which image failed to load.
func LoadImageFile(mem *Memory, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	defer f.Close()

	if _, err := LoadImage(mem, f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
