package blockfile_test

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	testIndexMagic = 0xC103CAC3
	testBlockMagic = 0xC104CAC3
	testIndexHead  = 368
	testBlockHead  = 8192
	windowsEpochUS = 11_644_473_600 * 1_000_000

	maxInlineKeyLen = 4*256 - 96 - 1
)

func blockAddr(fileType, file, start, count int) uint32 {
	return 0x80000000 | uint32(fileType)<<28 | uint32(count-1)<<24 | uint32(file)<<16 | uint32(start)
}

func externalAddr(id int) uint32 {
	return 0x80000000 | uint32(id)
}

// blockFile accumulates fixed-size blocks behind a block file header.
type blockFile struct {
	size   int
	blocks []byte
}

func (f *blockFile) alloc(count int) (int, []byte) {
	start := len(f.blocks) / f.size
	f.blocks = append(f.blocks, make([]byte, count*f.size)...)
	return start, f.blocks[start*f.size : (start+count)*f.size]
}

func (f *blockFile) bytes() []byte {
	head := make([]byte, testBlockHead)
	binary.LittleEndian.PutUint32(head[0:], testBlockMagic)
	binary.LittleEndian.PutUint32(head[4:], 0x20000)
	binary.LittleEndian.PutUint32(head[12:], uint32(f.size))
	binary.LittleEndian.PutUint32(head[16:], uint32(len(f.blocks)/f.size))
	return append(head, f.blocks...)
}

// cacheBuilder writes a synthetic blockfile cache. Rankings live in data_0,
// entries in data_1, long keys in data_2 and external f_ files.
type cacheBuilder struct {
	tableLen int
	table    []uint32
	tails    map[int]uint32
	files    map[int]*blockFile
	external map[string][]byte
}

func newCacheBuilder(tableLen int) *cacheBuilder {
	n := tableLen
	if n == 0 {
		n = 0x10000
	}
	return &cacheBuilder{
		tableLen: tableLen,
		table:    make([]uint32, n),
		tails:    make(map[int]uint32),
		files: map[int]*blockFile{
			0: {size: 36},
			1: {size: 256},
			2: {size: 1024},
			3: {size: 4096},
		},
		external: make(map[string][]byte),
	}
}

func (b *cacheBuilder) store(addr uint32) []byte {
	file := int((addr >> 16) & 0xFF)
	start := int(addr & 0xFFFF)
	f := b.files[file]
	return f.blocks[start*f.size : (start+1)*f.size]
}

// add appends an entry for key to the collision chain of bucket and returns its address.
func (b *cacheBuilder) add(bucket int, key string, lastUsed time.Time) uint32 {
	rStart, node := b.files[0].alloc(1)
	binary.LittleEndian.PutUint64(node[0:], uint64(lastUsed.UnixMicro()+windowsEpochUS))

	// Keys up to 927 bytes stay inline, NUL-terminated, in up to four entry blocks.
	count := 1
	if len(key) <= maxInlineKeyLen {
		count = (96 + len(key) + 1 + 255) / 256
	}
	eStart, store := b.files[1].alloc(count)
	binary.LittleEndian.PutUint32(store[8:], blockAddr(1, 0, rStart, 1))
	binary.LittleEndian.PutUint32(store[32:], uint32(len(key)))

	switch {
	case len(key) <= maxInlineKeyLen:
		copy(store[96:], key)
	case len(key) <= 4*1024:
		count := (len(key) + 1023) / 1024
		kStart, blk := b.files[2].alloc(count)
		copy(blk, key)
		binary.LittleEndian.PutUint32(store[36:], blockAddr(3, 2, kStart, count))
	default:
		id := len(b.external) + 1
		b.external[fmt.Sprintf("f_%06x", id)] = []byte(key)
		binary.LittleEndian.PutUint32(store[36:], externalAddr(id))
	}

	addr := blockAddr(2, 1, eStart, count)
	if tail, ok := b.tails[bucket]; ok {
		binary.LittleEndian.PutUint32(b.store(tail)[4:], addr)
	} else {
		b.table[bucket] = addr
	}
	b.tails[bucket] = addr
	return addr
}

// setNext overwrites the chain pointer of the entry at addr.
func (b *cacheBuilder) setNext(addr, next uint32) {
	binary.LittleEndian.PutUint32(b.store(addr)[4:], next)
}

func (b *cacheBuilder) index() []byte {
	data := make([]byte, testIndexHead+4*len(b.table))
	binary.LittleEndian.PutUint32(data[0:], testIndexMagic)
	binary.LittleEndian.PutUint32(data[4:], 0x30000)
	binary.LittleEndian.PutUint32(data[28:], uint32(b.tableLen))
	for i, addr := range b.table {
		binary.LittleEndian.PutUint32(data[testIndexHead+4*i:], addr)
	}
	return data
}

func (b *cacheBuilder) write(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "index", b.index())
	for n, f := range b.files {
		writeFile(t, dir, fmt.Sprintf("data_%d", n), f.bytes())
	}
	for name, data := range b.external {
		writeFile(t, dir, name, data)
	}
	return dir
}

func writeFile(t *testing.T, dir, name string, data []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o600))
}
