package ldso

import (
	"bytes"
	"encoding/binary"
	"errors"
	iofs "io/fs"
	"os"

	"go.trai.ch/brokenpkg/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	oldCacheMagic = "ld.so-1.7.0"
	newCacheMagic = "glibc-ld.so.cache"
	newCacheVer   = "1.1"

	// oldHeaderLen covers the magic, its padding and the entry count.
	oldHeaderLen   = 16
	oldEntryLen    = 12
	newHeaderLen   = 48
	newEntryLen    = 24
	newCacheAlign  = 8
	newNlibsOffset = len(newCacheMagic) + len(newCacheVer)
)

// Cache maps library sonames to the paths recorded by ldconfig, in cache order.
type Cache map[string][]string

// LoadCache reads the binary ld.so.cache at path. A missing file yields an empty cache.
func LoadCache(path string) (Cache, error) {
	data, err := os.ReadFile(path) //nolint:gosec // loader cache path
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return Cache{}, nil
		}
		return nil, zerr.With(errors.Join(domain.ErrLinkerCacheInvalid, err), "path", path)
	}

	cache, err := ParseCache(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return cache, nil
}

// ParseCache decodes the new-format cache, skipping a leading old-format section if present.
// Integers are in host byte order.
func ParseCache(data []byte) (Cache, error) {
	start := 0
	if bytes.HasPrefix(data, []byte(oldCacheMagic)) {
		if len(data) < oldHeaderLen {
			return nil, invalid("truncated old-format header")
		}
		nlibs := int(binary.NativeEndian.Uint32(data[12:16]))
		start = oldHeaderLen + nlibs*oldEntryLen
		if rem := start % newCacheAlign; rem != 0 {
			start += newCacheAlign - rem
		}
		if start > len(data) {
			return nil, invalid("old-format section exceeds file")
		}
	}

	section := data[start:]
	if !bytes.HasPrefix(section, []byte(newCacheMagic+newCacheVer)) {
		return nil, invalid("unknown cache format")
	}
	if len(section) < newHeaderLen {
		return nil, invalid("truncated header")
	}

	nlibs := int(binary.NativeEndian.Uint32(section[newNlibsOffset:]))
	if nlibs < 0 || newHeaderLen+nlibs*newEntryLen > len(section) {
		return nil, invalid("entry table exceeds file")
	}

	cache := make(Cache, nlibs)
	for i := range nlibs {
		entry := section[newHeaderLen+i*newEntryLen:]
		key, ok := cString(section, binary.NativeEndian.Uint32(entry[4:8]))
		if !ok {
			return nil, invalid("key offset out of range")
		}
		value, ok := cString(section, binary.NativeEndian.Uint32(entry[8:12]))
		if !ok {
			return nil, invalid("value offset out of range")
		}
		cache[key] = append(cache[key], value)
	}
	return cache, nil
}

// Lookup returns the recorded paths for soname.
func (c Cache) Lookup(soname string) []string {
	return c[soname]
}

func cString(data []byte, off uint32) (string, bool) {
	if int64(off) >= int64(len(data)) {
		return "", false
	}
	rest := data[off:]
	end := bytes.IndexByte(rest, 0)
	if end < 0 {
		return "", false
	}
	return string(rest[:end]), true
}

func invalid(reason string) error {
	return zerr.With(domain.ErrLinkerCacheInvalid, "reason", reason)
}
