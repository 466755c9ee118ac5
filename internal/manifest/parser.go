package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aerostackdev/cli/internal/platform"
)

// ReadLocal reads dir/aerostack-manifest.json. A missing file yields an
// empty manifest.
func ReadLocal(dir string) (*Local, error) {
	path := filepath.Join(dir, LocalFileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Local{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}

	var m Local
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return &m, nil
}

// WriteLocal writes m to dir/aerostack-manifest.json atomically.
func WriteLocal(dir string, m *Local) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	path := filepath.Join(dir, LocalFileName)
	if err := platform.WriteFileAtomic(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing manifest %s: %w", path, err)
	}
	return nil
}

// ReadGateway reads dir/aerostack.json. A missing file yields an empty
// config; both ai_config and aiConfig spellings are accepted, snake case
// first.
func ReadGateway(dir string) (*Gateway, error) {
	path := filepath.Join(dir, GatewayFileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Gateway{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}

	var f gatewayFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	g := &Gateway{AIConfig: nonNull(f.AIConfigSnake), Monetization: nonNull(f.Monetization)}
	if g.AIConfig == nil {
		g.AIConfig = nonNull(f.AIConfigCamel)
	}
	return g, nil
}

func nonNull(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return raw
}
