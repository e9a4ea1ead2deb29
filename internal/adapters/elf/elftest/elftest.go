// Package elftest builds minimal ELF64 objects for tests.
package elftest

import (
	"bytes"
	"debug/elf"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// Object describes the dynamic section of a synthetic ELF object.
type Object struct {
	// Machine defaults to elf.EM_X86_64.
	Machine elf.Machine
	Needed  []string
	RPath   string
	RunPath string
	// Static omits the dynamic section entirely.
	Static bool
}

const (
	headerSize  = 64
	sectionSize = 64
	dynSize     = 16
)

// Bytes returns the encoded ELF64 little-endian shared object.
func Bytes(o Object) []byte {
	machine := o.Machine
	if machine == elf.EM_NONE {
		machine = elf.EM_X86_64
	}

	var shstrtab bytes.Buffer
	shstrtab.WriteByte(0)
	nameOf := func(name string) uint32 {
		off := uint32(shstrtab.Len()) //nolint:gosec // tiny buffers
		shstrtab.WriteString(name)
		shstrtab.WriteByte(0)
		return off
	}

	sections := []elf.Section64{{}}
	var body bytes.Buffer

	if !o.Static {
		var dynstr bytes.Buffer
		dynstr.WriteByte(0)
		str := func(s string) uint64 {
			off := uint64(dynstr.Len())
			dynstr.WriteString(s)
			dynstr.WriteByte(0)
			return off
		}

		var dyns []elf.Dyn64
		for _, n := range o.Needed {
			dyns = append(dyns, elf.Dyn64{Tag: int64(elf.DT_NEEDED), Val: str(n)})
		}
		if o.RPath != "" {
			dyns = append(dyns, elf.Dyn64{Tag: int64(elf.DT_RPATH), Val: str(o.RPath)})
		}
		if o.RunPath != "" {
			dyns = append(dyns, elf.Dyn64{Tag: int64(elf.DT_RUNPATH), Val: str(o.RunPath)})
		}
		dyns = append(dyns, elf.Dyn64{Tag: int64(elf.DT_NULL)})

		dynstrOff := uint64(headerSize + body.Len())
		body.Write(dynstr.Bytes())
		pad(&body, 8)

		dynOff := uint64(headerSize + body.Len())
		for _, d := range dyns {
			_ = binary.Write(&body, binary.LittleEndian, d)
		}

		sections = append(sections,
			elf.Section64{
				Name:      nameOf(".dynstr"),
				Type:      uint32(elf.SHT_STRTAB),
				Flags:     uint64(elf.SHF_ALLOC),
				Off:       dynstrOff,
				Size:      uint64(dynstr.Len()),
				Addralign: 1,
			},
			elf.Section64{
				Name:      nameOf(".dynamic"),
				Type:      uint32(elf.SHT_DYNAMIC),
				Flags:     uint64(elf.SHF_ALLOC | elf.SHF_WRITE),
				Off:       dynOff,
				Size:      uint64(len(dyns) * dynSize),
				Link:      1,
				Addralign: 8,
				Entsize:   dynSize,
			},
		)
	}

	shstrndx := len(sections)
	shstrName := nameOf(".shstrtab")
	shstrOff := uint64(headerSize + body.Len())
	body.Write(shstrtab.Bytes())
	sections = append(sections, elf.Section64{
		Name:      shstrName,
		Type:      uint32(elf.SHT_STRTAB),
		Off:       shstrOff,
		Size:      uint64(shstrtab.Len()),
		Addralign: 1,
	})
	pad(&body, 8)
	shoff := uint64(headerSize + body.Len())

	var ident [elf.EI_NIDENT]byte
	copy(ident[:], elf.ELFMAG)
	ident[elf.EI_CLASS] = byte(elf.ELFCLASS64)
	ident[elf.EI_DATA] = byte(elf.ELFDATA2LSB)
	ident[elf.EI_VERSION] = byte(elf.EV_CURRENT)

	hdr := elf.Header64{
		Ident:     ident,
		Type:      uint16(elf.ET_DYN),
		Machine:   uint16(machine),
		Version:   uint32(elf.EV_CURRENT),
		Shoff:     shoff,
		Ehsize:    headerSize,
		Shentsize: sectionSize,
		Shnum:     uint16(len(sections)), //nolint:gosec // at most four sections
		Shstrndx:  uint16(shstrndx),      //nolint:gosec // at most four sections
	}

	var out bytes.Buffer
	_ = binary.Write(&out, binary.LittleEndian, hdr)
	out.Write(body.Bytes())
	for _, s := range sections {
		_ = binary.Write(&out, binary.LittleEndian, s)
	}
	return out.Bytes()
}

// Write encodes o to path with mode 0755, creating parent directories.
func Write(tb testing.TB, path string, o Object) string {
	tb.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		tb.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, Bytes(o), 0o755); err != nil { //nolint:gosec // test fixture
		tb.Fatalf("write %s: %v", path, err)
	}
	return path
}

func pad(b *bytes.Buffer, align int) {
	for b.Len()%align != 0 {
		b.WriteByte(0)
	}
}
