package cart

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const (
	dumpWidth    = 16
	dumpHexWidth = dumpWidth*3 - 1
)

const hexDigits = "0123456789ABCDEF"

// Dump writes rom as a hex/ASCII listing, 16 bytes per line:
//
//	0000  31 FE FF AF 21 FF 9F 32 CB 7C 20 FB 21 26 FF 0E  1...!..2.| .!&..
//
// The offset column is decimal. Bytes outside 0x20–0x7E print as '.'.
func Dump(w io.Writer, rom []byte) error {
	bw := bufio.NewWriter(w)
	line := make([]byte, 0, 8+dumpHexWidth+2+dumpWidth+1)
	for off := 0; off < len(rom); off += dumpWidth {
		end := off + dumpWidth
		if end > len(rom) {
			end = len(rom)
		}
		line = appendDumpLine(line[:0], off, rom[off:end])
		if _, err := bw.Write(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// RenderROMDump returns the Dump listing of rom as a string.
func RenderROMDump(rom []byte) string {
	var sb strings.Builder
	sb.Grow((len(rom)/dumpWidth + 1) * (8 + dumpHexWidth + 2 + dumpWidth + 1))
	_ = Dump(&sb, rom)
	return sb.String()
}

// DumpLines is the number of lines Dump produces for an image of n bytes.
func DumpLines(n int) int {
	return (n + dumpWidth - 1) / dumpWidth
}

// DumpLine renders the single listing line starting at line index i.
func DumpLine(rom []byte, i int) string {
	off := i * dumpWidth
	if i < 0 || off >= len(rom) {
		return ""
	}
	end := off + dumpWidth
	if end > len(rom) {
		end = len(rom)
	}
	line := appendDumpLine(nil, off, rom[off:end])
	return string(line[:len(line)-1])
}

func appendDumpLine(dst []byte, off int, chunk []byte) []byte {
	dst = fmt.Appendf(dst, "%04d  ", off)
	for i, b := range chunk {
		if i > 0 {
			dst = append(dst, ' ')
		}
		dst = append(dst, hexDigits[b>>4], hexDigits[b&0x0F])
	}
	// pad a short final line so the ASCII column lines up
	for i := len(chunk); i < dumpWidth; i++ {
		dst = append(dst, ' ', ' ', ' ')
	}
	dst = append(dst, ' ', ' ')
	for _, b := range chunk {
		if b >= 0x20 && b <= 0x7E {
			dst = append(dst, b)
		} else {
			dst = append(dst, '.')
		}
	}
	return append(dst, '\n')
}
