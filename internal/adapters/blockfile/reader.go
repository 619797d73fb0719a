// Package blockfile reads the Chromium "blockfile" disk cache used by the
// embedded browser of the game client.
package blockfile

import (
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/scrwatch/internal/core/domain"
	"go.trai.ch/scrwatch/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SnapshotReader = (*Reader)(nil)

// DefaultMaxEntries bounds the number of entries visited in one read.
const DefaultMaxEntries = 1 << 20

// Reader implements ports.SnapshotReader for a blockfile cache directory.
type Reader struct {
	maxEntries int
}

// Option configures a Reader.
type Option func(*Reader)

// WithMaxEntries overrides DefaultMaxEntries.
func WithMaxEntries(n int) Option {
	return func(r *Reader) {
		r.maxEntries = n
	}
}

// NewReader creates a Reader.
func NewReader(opts ...Option) *Reader {
	r := &Reader{maxEntries: DefaultMaxEntries}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Read yields every entry reachable from the index hash table, bucket by
// bucket and along each collision chain. Files are read when first needed.
func (r *Reader) Read(dir string) iter.Seq2[domain.CacheEntry, error] {
	return func(yield func(domain.CacheEntry, error) bool) {
		c := &cache{dir: dir, blocks: make(map[int][]byte)}

		table, err := c.loadIndex()
		if err != nil {
			yield(domain.CacheEntry{}, err)
			return
		}

		visited := 0
		for _, head := range table {
			for addr := head; addr != 0; {
				visited++
				if visited > r.maxEntries {
					yield(domain.CacheEntry{}, zerr.With(
						zerr.Wrap(domain.ErrCacheCorrupt, "too many entries"), "max_entries", r.maxEntries))
					return
				}

				entry, next, err := c.entry(addr)
				if err != nil {
					yield(domain.CacheEntry{}, err)
					return
				}
				if !yield(entry, nil) {
					return
				}
				addr = next
			}
		}
	}
}

// cache holds the files of one Read call.
type cache struct {
	dir    string
	blocks map[int][]byte
}

func (c *cache) readFile(name string) ([]byte, error) {
	// #nosec G304 -- name is built from a validated cache address
	data, err := os.ReadFile(filepath.Join(c.dir, name))
	if err != nil {
		readErr := zerr.With(zerr.Wrap(domain.ErrCacheReadFailed, "cannot read cache file"), "file", name)
		return nil, zerr.With(readErr, "reason", err.Error())
	}
	return data, nil
}

// loadIndex validates the index header and returns the hash table.
func (c *cache) loadIndex() ([]cacheAddr, error) {
	data, err := c.readFile("index")
	if err != nil {
		return nil, err
	}
	if len(data) < indexHeaderSize {
		return nil, corrupt("index header truncated", "size", len(data))
	}
	if magic := u32(data, offIndexMagic); magic != indexMagic {
		return nil, corrupt("bad index magic", "magic", fmt.Sprintf("%#x", magic))
	}
	if version := u32(data, offIndexVersion); version>>16 < minIndexMajor {
		return nil, corrupt("unsupported index version", "version", fmt.Sprintf("%d.%d", version>>16, version&0xFFFF))
	}

	tableLen := int(u32(data, offIndexTableLen))
	if tableLen == 0 {
		tableLen = defaultTableLen
	}
	if len(data) < indexHeaderSize+4*tableLen {
		return nil, corrupt("index table truncated", "table_len", tableLen)
	}

	table := make([]cacheAddr, tableLen)
	for i := range table {
		table[i] = cacheAddr(u32(data, indexHeaderSize+4*i))
	}
	return table, nil
}

// blockFile returns data_N, checking its header on first use.
func (c *cache) blockFile(n int) ([]byte, error) {
	if data, ok := c.blocks[n]; ok {
		return data, nil
	}

	name := fmt.Sprintf("data_%d", n)
	data, err := c.readFile(name)
	if err != nil {
		return nil, err
	}
	if len(data) < blockHeaderSize {
		return nil, corrupt("block file header truncated", "file", name)
	}
	if magic := u32(data, offBlockMagic); magic != blockMagic {
		return nil, corrupt("bad block file magic", "file", name)
	}

	c.blocks[n] = data
	return data, nil
}

// block returns the bytes addressed by addr, which must point into a block
// file of the given type.
func (c *cache) block(addr cacheAddr, want fileType) ([]byte, error) {
	if !addr.initialized() {
		return nil, corrupt("address not initialized", "addr", addr.String())
	}
	if addr.fileType() != want {
		return nil, corrupt("unexpected address type", "addr", addr.String())
	}

	data, err := c.blockFile(addr.fileNumber())
	if err != nil {
		return nil, err
	}

	size := want.blockSize()
	if entrySize := int(u32(data, offBlockEntrySize)); entrySize != size {
		return nil, corrupt("block size mismatch", "addr", addr.String())
	}

	start := blockHeaderSize + addr.startBlock()*size
	end := start + addr.blockCount()*size
	if end > len(data) {
		return nil, corrupt("address out of range", "addr", addr.String())
	}
	return data[start:end], nil
}

// entry decodes the EntryStore at addr and returns it with the next address
// of its collision chain.
func (c *cache) entry(addr cacheAddr) (domain.CacheEntry, cacheAddr, error) {
	store, err := c.block(addr, typeBlock256)
	if err != nil {
		return domain.CacheEntry{}, 0, err
	}

	node, err := c.block(cacheAddr(u32(store, offEntryRankings)), typeRankings)
	if err != nil {
		return domain.CacheEntry{}, 0, err
	}

	key, err := c.key(store)
	if err != nil {
		return domain.CacheEntry{}, 0, err
	}

	entry := domain.CacheEntry{
		URL:      urlFromKey(key),
		LastUsed: windowsTime(u64(node, 0)),
	}
	return entry, cacheAddr(u32(store, offEntryNext)), nil
}

// key returns the entry key, inline or from its long key storage.
func (c *cache) key(store []byte) (string, error) {
	keyLen := int(int32(u32(store, offEntryKeyLen)))
	if keyLen < 0 {
		return "", corrupt("negative key length", "key_len", keyLen)
	}

	// Inline keys may span every block of the EntryStore.
	longKey := cacheAddr(u32(store, offEntryLongKey))
	if !longKey.initialized() {
		if keyLen > len(store)-inlineKeyOffset {
			return "", corrupt("inline key too long", "key_len", keyLen)
		}
		return string(store[inlineKeyOffset : inlineKeyOffset+keyLen]), nil
	}

	var data []byte
	if longKey.fileType() == typeExternal {
		ext, err := c.readFile(fmt.Sprintf("f_%06x", longKey.externalID()))
		if err != nil {
			return "", err
		}
		data = ext
	} else {
		blk, err := c.block(longKey, longKey.fileType())
		if err != nil {
			return "", err
		}
		data = blk
	}

	if keyLen > len(data) {
		return "", corrupt("long key truncated", "key_len", keyLen)
	}
	return string(data[:keyLen]), nil
}

// urlFromKey strips the cache partitioning prefixes Chromium puts in front of
// the URL ("1/0/" and "_dk_<site> <site> ").
func urlFromKey(key string) string {
	if strings.HasPrefix(key, "1/0/") {
		key = key[len("1/0/"):]
	}
	if strings.HasPrefix(key, "_dk_") {
		if i := strings.LastIndexByte(key, ' '); i >= 0 {
			key = key[i+1:]
		}
	}
	return key
}

func corrupt(msg, key string, value any) error {
	return zerr.With(zerr.Wrap(domain.ErrCacheCorrupt, msg), key, value)
}

func (a cacheAddr) String() string {
	return fmt.Sprintf("%#08x", uint32(a))
}
