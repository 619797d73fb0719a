package blockfile

import (
	"encoding/binary"
	"time"
)

const (
	indexMagic = 0xC103CAC3
	blockMagic = 0xC104CAC3

	indexHeaderSize = 368
	blockHeaderSize = 8192

	// defaultTableLen is used when the index header leaves table_len at zero.
	defaultTableLen = 0x10000

	minIndexMajor = 2

	entryStoreSize   = 256
	rankingsNodeSize = 36
	inlineKeyOffset  = 96
)

// Offsets inside the index header.
const (
	offIndexMagic    = 0
	offIndexVersion  = 4
	offIndexTableLen = 28
)

// Offsets inside a block file header.
const (
	offBlockMagic     = 0
	offBlockEntrySize = 12
)

// Offsets inside an EntryStore.
const (
	offEntryNext     = 4
	offEntryRankings = 8
	offEntryKeyLen   = 32
	offEntryLongKey  = 36
)

// windowsEpochOffset is the number of microseconds between 1601-01-01 and 1970-01-01.
const windowsEpochOffset = 11_644_473_600 * 1_000_000

// fileType is the kind of storage a cache address points into.
type fileType uint8

const (
	typeExternal fileType = 0
	typeRankings fileType = 1
	typeBlock256 fileType = 2
	typeBlock1K  fileType = 3
	typeBlock4K  fileType = 4
)

// blockSize returns the block size of a block file type, or 0 for other types.
func (t fileType) blockSize() int {
	switch t {
	case typeRankings:
		return rankingsNodeSize
	case typeBlock256:
		return 256
	case typeBlock1K:
		return 1024
	case typeBlock4K:
		return 4096
	default:
		return 0
	}
}

// cacheAddr is a 32-bit cache address.
//
//	bit 31     initialized
//	bits 28-30 file type
//	bits 24-25 block count - 1 (block files)
//	bits 16-23 file number (block files)
//	bits 0-15  start block (block files)
//	bits 0-27  file number (external files)
type cacheAddr uint32

func (a cacheAddr) initialized() bool { return a&0x80000000 != 0 }
func (a cacheAddr) fileType() fileType {
	return fileType((a >> 28) & 0x7)
}
func (a cacheAddr) blockCount() int    { return int((a>>24)&0x3) + 1 }
func (a cacheAddr) fileNumber() int    { return int((a >> 16) & 0xFF) }
func (a cacheAddr) startBlock() int    { return int(a & 0xFFFF) }
func (a cacheAddr) externalID() uint32 { return uint32(a & 0x0FFFFFFF) }

func u32(b []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(b[off : off+4])
}

func u64(b []byte, off int) uint64 {
	return binary.LittleEndian.Uint64(b[off : off+8])
}

// windowsTime converts microseconds since 1601-01-01 UTC.
func windowsTime(us uint64) time.Time {
	return time.UnixMicro(int64(us) - windowsEpochOffset).UTC()
}
