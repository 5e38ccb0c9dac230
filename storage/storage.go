// Package storage caches decoded packfile objects for the lifetime of a
// fetch session, so the default PackNegotiator can resolve REF_DELTA chains
// against bases it already unpacked without re-requesting them. OFS_DELTA
// entries are not resolved.
package storage

import "github.com/gitwire-go/gitwire/protocol/hash"

// ObjectType identifies the kind of a decoded pack entry, including the two
// delta-encoded forms that only exist inside a packfile and are resolved
// away before the object is handed to a caller.
type ObjectType int

const (
	ObjectTypeCommit ObjectType = iota + 1
	ObjectTypeTree
	ObjectTypeBlob
	ObjectTypeTag
	_ // 5 is reserved in the pack format
	ObjectTypeOffsetDelta
	ObjectTypeRefDelta
)

func (t ObjectType) String() string {
	switch t {
	case ObjectTypeCommit:
		return "commit"
	case ObjectTypeTree:
		return "tree"
	case ObjectTypeBlob:
		return "blob"
	case ObjectTypeTag:
		return "tag"
	case ObjectTypeOffsetDelta:
		return "ofs-delta"
	case ObjectTypeRefDelta:
		return "ref-delta"
	default:
		return "unknown"
	}
}

// PackfileObject is one fully resolved object decoded from a packfile: any
// delta chain has already been applied against its base.
type PackfileObject struct {
	Hash hash.Hash
	Type ObjectType
	Data []byte
}

// PackfileStorage is a cache of decoded packfile objects, keyed by hash.
type PackfileStorage interface {
	// Get retrieves an object by its hash.
	Get(key hash.Hash) (*PackfileObject, bool)
	// GetAllKeys returns all keys currently in the storage.
	GetAllKeys() []hash.Hash
	// Add adds objects to the storage.
	Add(objs ...*PackfileObject)
	// Delete removes an object from the storage.
	Delete(key hash.Hash)
	// Len returns the number of objects in the storage.
	Len() int
}
