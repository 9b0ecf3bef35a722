package versions

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jonathan/cv-builder/internal/schemas"
	"github.com/jonathan/cv-builder/internal/types"
)

// SchemaVersion is the current snapshot envelope version. Bare-array snapshots are version 0.
const SchemaVersion = 1

type snapshot struct {
	SchemaVersion int               `json:"schemaVersion"`
	Versions      []types.CVVersion `json:"versions"`
}

func encodeSnapshot(versions []types.CVVersion) ([]byte, error) {
	data, err := json.MarshalIndent(snapshot{SchemaVersion: SchemaVersion, Versions: versions}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode versions: %w", err)
	}
	return data, nil
}

// decodeSnapshot accepts either the envelope or a legacy bare array, validates it against the
// snapshot schema, and normalizes nil lists.
func decodeSnapshot(data []byte) ([]types.CVVersion, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("snapshot is empty")
	}

	if trimmed[0] == '[' {
		var legacy []json.RawMessage
		if err := json.Unmarshal(trimmed, &legacy); err != nil {
			return nil, fmt.Errorf("failed to parse legacy snapshot: %w", err)
		}
		wrapped, err := json.Marshal(map[string]any{"schemaVersion": SchemaVersion, "versions": legacy})
		if err != nil {
			return nil, fmt.Errorf("failed to migrate legacy snapshot: %w", err)
		}
		trimmed = wrapped
	}

	if err := schemas.ValidateSnapshot(string(trimmed)); err != nil {
		return nil, err
	}

	var snap snapshot
	if err := json.Unmarshal(trimmed, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if snap.SchemaVersion > SchemaVersion {
		return nil, fmt.Errorf("snapshot schema version %d is newer than supported version %d", snap.SchemaVersion, SchemaVersion)
	}

	for i := range snap.Versions {
		snap.Versions[i] = normalize(snap.Versions[i])
	}
	return snap.Versions, nil
}

func normalize(v types.CVVersion) types.CVVersion {
	v.Data = v.Data.Clone()
	v.SectionOrder = cloneOrEmpty(v.SectionOrder)
	v.HiddenSections = cloneOrEmpty(v.HiddenSections)
	return v
}
