package model

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Hash is consistent with Equal: equal values always hash equal. Sequences
// contribute their length and first element only.
func (t ObservableType) Hash() uint64 {
	h := hasher{d: xxhash.New()}

	h.int(len(t.Scope))
	if len(t.Scope) > 0 {
		h.str(t.Scope[0])
	}
	h.str(t.PackageName)
	h.str(t.Name)
	h.int(len(t.TypeParams))
	if len(t.TypeParams) > 0 {
		h.str(t.TypeParams[0].Name)
		h.str(t.TypeParams[0].Constraint)
	}
	h.int(int(t.Visibility))
	h.bool(t.ProvidesNotifier)
	h.bool(t.ProvidesChanging)
	h.bool(t.ImplementChanging)
	h.bool(t.Suppressable)
	h.int(len(t.AlwaysNotify))
	if len(t.AlwaysNotify) > 0 {
		h.str(t.AlwaysNotify[0])
	}
	h.int(len(t.Fields))
	if len(t.Fields) > 0 {
		h.field(t.Fields[0])
	}
	return h.d.Sum64()
}

// Hash hashes every scalar attribute of the field plus the length and
// first element of each sequence.
func (f Field) Hash() uint64 {
	h := hasher{d: xxhash.New()}
	h.field(f)
	return h.d.Sum64()
}

type hasher struct {
	d   *xxhash.Digest
	buf [8]byte
}

func (h *hasher) str(s string) {
	h.int(len(s))
	_, _ = h.d.WriteString(s)
}

func (h *hasher) int(n int) {
	binary.LittleEndian.PutUint64(h.buf[:], uint64(n))
	_, _ = h.d.Write(h.buf[:])
}

func (h *hasher) bool(b bool) {
	if b {
		h.int(1)
		return
	}
	h.int(0)
}

func (h *hasher) field(f Field) {
	h.str(f.StorageName)
	h.str(f.AccessorName)
	h.str(f.Type)
	h.int(len(f.Imports))
	if len(f.Imports) > 0 {
		h.str(f.Imports[0].Path)
	}
	h.bool(f.Nullable)
	h.bool(f.Primitive)
	h.int(len(f.AlsoNotify))
	if len(f.AlsoNotify) > 0 {
		h.str(f.AlsoNotify[0])
	}
	h.int(len(f.RefreshCommands))
	if len(f.RefreshCommands) > 0 {
		h.str(f.RefreshCommands[0])
	}
	h.int(int(f.Setter))
}
