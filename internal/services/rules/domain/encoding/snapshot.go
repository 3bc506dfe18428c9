package encoding

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/louisbranch/manaforge/internal/services/rules/domain/game"
)

// SnapshotVersion is the current snapshot document version.
const SnapshotVersion = 1

// ErrSnapshotVersion indicates a snapshot written by an unsupported version.
var ErrSnapshotVersion = errors.New("unsupported snapshot version")

type snapshotDoc struct {
	Version int        `json:"version"`
	Hash    string     `json:"hash"`
	State   game.State `json:"state"`
}

// EncodeState wraps a state in a versioned, hashed snapshot document.
func EncodeState(s game.State) ([]byte, error) {
	hash, err := Hash(s)
	if err != nil {
		return nil, err
	}
	return Canonical(snapshotDoc{Version: SnapshotVersion, Hash: hash, State: s})
}

// DecodeState reads a snapshot document and verifies its hash.
func DecodeState(data []byte) (game.State, error) {
	var doc snapshotDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return game.State{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if doc.Version != SnapshotVersion {
		return game.State{}, fmt.Errorf("%w: %d", ErrSnapshotVersion, doc.Version)
	}
	hash, err := Hash(doc.State)
	if err != nil {
		return game.State{}, err
	}
	if hash != doc.Hash {
		return game.State{}, fmt.Errorf("snapshot hash mismatch: got %s want %s", hash, doc.Hash)
	}
	return doc.State, nil
}
