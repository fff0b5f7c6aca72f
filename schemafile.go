package bitmask

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Schema documents let flag layouts live in external files instead of
// struct tags:
//
//	mode: explicit
//	total_bits: 8
//	flags:
//	  - name: first
//	    index: 0
//	  - name: last
//	    index: 7
//
// Implicit documents list names only; total_bits and per-flag indices are
// explicit-mode concepts and are rejected elsewhere.

type schemaDoc struct {
	Mode      string    `yaml:"mode"`
	TotalBits *int      `yaml:"total_bits"`
	Flags     []flagDoc `yaml:"flags"`
}

type flagDoc struct {
	Name  string `yaml:"name"`
	Index *int   `yaml:"index"`
}

// LoadSchema reads a YAML schema document from r and resolves it.
func LoadSchema(r io.Reader) (*Schema, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseSchema(data)
}

// ParseSchema resolves a YAML schema document. Schema-definition errors
// (missing or duplicate indices, indices past total_bits) surface exactly
// as they do from ResolveExplicit.
func ParseSchema(data []byte) (*Schema, error) {
	var doc schemaDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("schema document: %w", err)
	}
	for _, f := range doc.Flags {
		if f.Name == "" {
			return nil, fmt.Errorf("schema document: flag without a name")
		}
	}

	switch doc.Mode {
	case "implicit", "":
		if doc.TotalBits != nil {
			return nil, fmt.Errorf("schema document: total_bits needs explicit mode")
		}
		names := make([]string, len(doc.Flags))
		for i, f := range doc.Flags {
			if f.Index != nil {
				return nil, fmt.Errorf("schema document: flag %q has an index in implicit mode", f.Name)
			}
			names[i] = f.Name
		}
		return ResolveImplicit(names), nil

	case "explicit":
		fields := make([]Field, len(doc.Flags))
		for i, f := range doc.Flags {
			fields[i] = Field{Name: f.Name}
			if f.Index != nil {
				fields[i].Index = *f.Index
				fields[i].HasIndex = true
			}
		}
		var opts []ResolveOption
		if doc.TotalBits != nil {
			opts = append(opts, WithTotalBits(*doc.TotalBits))
		}
		return ResolveExplicit(fields, opts...)

	default:
		return nil, fmt.Errorf("schema document: unknown mode %q", doc.Mode)
	}
}
