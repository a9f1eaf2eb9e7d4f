package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ExtensionState carries JSON-encoded data attached to an entity under
// string keys, such as the template it was built from. It is copied on spawn
// and persisted with the entity.
type ExtensionState map[string]json.RawMessage

// Set stores v under key after marshalling it to JSON.
func (e *ExtensionState) Set(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal extension %q: %w", key, err)
	}

	if *e == nil {
		*e = ExtensionState{}
	}
	(*e)[key] = json.RawMessage(b)
	return nil
}

// Get unmarshals the extension value at key into out.
// Returns (found=false, nil) if not present.
func (e ExtensionState) Get(key string, out any) (bool, error) {
	raw, ok := e[key]
	if !ok || len(raw) == 0 {
		return false, nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return true, fmt.Errorf("unmarshal extension %q: %w", key, err)
	}
	return true, nil
}

// GetExtension is the typed form of ExtensionState.Get.
func GetExtension[T any](e ExtensionState, key string) (T, bool, error) {
	var out T
	found, err := e.Get(key, &out)
	return out, found, err
}

// Clone returns a deep copy; no raw message buffer is shared with e.
func (e ExtensionState) Clone() ExtensionState {
	if e == nil {
		return nil
	}
	out := make(ExtensionState, len(e))
	for k, raw := range e {
		out[k] = bytes.Clone(raw)
	}
	return out
}
