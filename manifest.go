package icongen

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Manifest records which identifier was derived for each asset.
type Manifest struct {
	Target string          `yaml:"target"`
	Icons  []ManifestEntry `yaml:"icons"`
}

type ManifestEntry struct {
	File       string `yaml:"file"`
	Identifier string `yaml:"identifier"`
}

// NewManifest lists assets in discovery order.
func NewManifest(target string, assets []*Asset) *Manifest {
	m := &Manifest{Target: target, Icons: make([]ManifestEntry, 0, len(assets))}
	for _, a := range assets {
		m.Icons = append(m.Icons, ManifestEntry{File: a.Name, Identifier: a.Identifier})
	}
	return m
}

// Marshal encodes the manifest as YAML preceded by the generated header.
func (m *Manifest) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("# This file is generated. Do not modify it\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	return buf.Bytes(), nil
}
