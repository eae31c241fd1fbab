// Package codec centralizes metadata encoding for persisted snapshots.
//
// Codec selection is a breaking-change boundary: bytes written by one codec
// may not decode under another. Snapshots therefore record the codec name
// in their header and select the codec by name on load.
package codec

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	default:
		return nil, false
	}
}

// Default is the codec used when none is configured.
var Default Codec = JSON{}
