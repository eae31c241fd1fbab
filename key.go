package vecdb

import "fmt"

type keyKind uint8

const (
	keyInvalid keyKind = iota
	keyIndex
	keyID
)

// Key addresses a record in one of two unrelated key spaces: by current
// position or by identifier. Construct it with ByIndex or ByID; the zero
// Key is invalid and fails lookups with ErrInvalidKey.
type Key struct {
	kind  keyKind
	index int
	id    string
}

// ByIndex addresses a record by its current position in the collection.
// Positions are not stable: deleting a record shifts every later record
// down by one.
func ByIndex(index int) Key {
	return Key{kind: keyIndex, index: index}
}

// ByID addresses a record by the identifier returned from Add.
// Identifiers stay valid across mutations.
func ByID(id string) Key {
	return Key{kind: keyID, id: id}
}

func (k Key) String() string {
	switch k.kind {
	case keyIndex:
		return fmt.Sprintf("ByIndex(%d)", k.index)
	case keyID:
		return fmt.Sprintf("ByID(%s)", k.id)
	default:
		return "InvalidKey"
	}
}
