package cart

import (
	"bytes"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestRenderROMDump_SingleLine(t *testing.T) {
	rom := []byte{
		0x48, 0x65, 0x6C, 0x6C, 0x6F, 0x00, 0x1F, 0x7F,
		0x20, 0x7E, 0x80, 0xFF, 0x41, 0x42, 0x0A, 0x43,
	}
	got := RenderROMDump(rom)

	want := "0000  48 65 6C 6C 6F 00 1F 7F 20 7E 80 FF 41 42 0A 43  Hello... ~..AB.C\n"
	assert.Equal(t, want, got)
	assert.Equal(t, 1, strings.Count(got, "\n"))
}

func TestRenderROMDump_Offsets(t *testing.T) {
	rom := make([]byte, 16*3)
	lines := strings.Split(strings.TrimSuffix(RenderROMDump(rom), "\n"), "\n")

	assert.Equal(t, 3, len(lines))
	assert.True(t, strings.HasPrefix(lines[0], "0000  "))
	assert.True(t, strings.HasPrefix(lines[1], "0016  "))
	assert.True(t, strings.HasPrefix(lines[2], "0032  "))
}

func TestRenderROMDump_ShortTailAligns(t *testing.T) {
	rom := make([]byte, 18)
	rom[16], rom[17] = 'O', 'K'
	lines := strings.Split(strings.TrimSuffix(RenderROMDump(rom), "\n"), "\n")

	assert.Equal(t, 2, len(lines))
	assert.Equal(t, len(lines[0])-14, len(lines[1]))
	assert.Equal(t, "0016  4F 4B"+strings.Repeat(" ", 14*3)+"  OK", lines[1])
}

func TestRenderROMDump_Empty(t *testing.T) {
	assert.Equal(t, "", RenderROMDump(nil))
	assert.Equal(t, 0, DumpLines(0))
}

func TestDumpLine(t *testing.T) {
	rom := make([]byte, 40)
	rom[32] = 'Z'

	assert.Equal(t, 3, DumpLines(len(rom)))
	assert.True(t, strings.HasPrefix(DumpLine(rom, 2), "0032  5A 00"))
	assert.True(t, strings.HasSuffix(DumpLine(rom, 2), "Z......."))
	assert.Equal(t, "", DumpLine(rom, 3))
	assert.Equal(t, "", DumpLine(rom, -1))
}

func TestDump_MatchesRender(t *testing.T) {
	rom := buildROM("DUMP", 0x00, 0x00, 0x00, 32*1024)

	var buf bytes.Buffer
	assert.NoError(t, Dump(&buf, rom))
	assert.Equal(t, RenderROMDump(rom), buf.String())
	assert.Equal(t, 2048, strings.Count(buf.String(), "\n"))
}
