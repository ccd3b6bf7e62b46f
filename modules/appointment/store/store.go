package store

// RawRecord is one store-native record. The three stores own unrelated
// schemas, so records cross the accessor boundary untyped; the format
// adapters do the typed work.
type RawRecord map[string]any

// Accessor is the narrow read/write facade the synchronizer depends on, one
// per record store. Each implementation owns its own durability and encoding
// and must guard its read-modify-write span against concurrent callers.
//
// List treats an absent, empty, or corrupt backing collection as empty; the
// synchronizer never sees a read failure. Append and ReplaceAll report their
// failures; ReplaceAll swaps the full collection in one step from the
// caller's point of view.
type Accessor interface {
	List() []RawRecord
	Append(record RawRecord) error
	ReplaceAll(records []RawRecord) error
}
