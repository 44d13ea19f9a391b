package codegen

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/strata-lang/strata/internal/compiler/binder"
	"github.com/strata-lang/strata/internal/compiler/registry"
)

// Metadata schema versions let tooling reject files it cannot read.
const metadataSchemaVersion = 1

// buildNamespace scopes the deterministic build IDs.
var buildNamespace = uuid.MustParse("8f3c2a1e-5b7d-4e60-9c44-2f1a6d0b8e53")

type metadataFile struct {
	SchemaVersion int                   `json:"schema_version"`
	BuildID       string                `json:"build_id"`
	Sources       []string              `json:"sources"`
	Declarations  []declarationMetadata `json:"declarations"`
	Uses          []useMetadata         `json:"uses"`
	Bootstrap     []bootstrapEntry      `json:"bootstrap"`
}

type declarationMetadata struct {
	Name    string              `json:"name"`
	Origin  string              `json:"origin"`
	Targets []string            `json:"targets"`
	Params  []parameterMetadata `json:"params"`
	Attach  *attachMetadata     `json:"attach,omitempty"`
}

type parameterMetadata struct {
	Name       string      `json:"name"`
	Type       string      `json:"type"`
	HasDefault bool        `json:"has_default"`
	Default    interface{} `json:"default,omitempty"`
}

type attachMetadata struct {
	ContextType string `json:"context_type"`
}

type useMetadata struct {
	Attribute string             `json:"attribute"`
	Element   string             `json:"element"`
	Kind      string             `json:"kind"`
	Args      []argumentMetadata `json:"args"`
}

type argumentMetadata struct {
	Name     string      `json:"name"`
	Value    interface{} `json:"value"`
	Explicit bool        `json:"explicit"`
}

type bootstrapEntry struct {
	Attribute string `json:"attribute"`
	Element   string `json:"element"`
	Context   string `json:"context"`
}

// buildMetadata renders the canonical JSON build metadata. The build ID is a
// SHA1-based UUID over the sorted source paths, so identical inputs produce
// identical metadata.
func buildMetadata(files []SourceFile, reg *registry.Registry, bound *binder.Result) ([]byte, error) {
	sources := make([]string, 0, len(files))
	for _, file := range files {
		sources = append(sources, file.Path)
	}

	meta := metadataFile{
		SchemaVersion: metadataSchemaVersion,
		BuildID:       uuid.NewSHA1(buildNamespace, []byte(strings.Join(sources, "\n"))).String(),
		Sources:       sources,
		Declarations:  []declarationMetadata{},
		Uses:          []useMetadata{},
		Bootstrap:     []bootstrapEntry{},
	}

	for _, decl := range reg.Declarations() {
		dm := declarationMetadata{
			Name:    decl.Name,
			Origin:  string(decl.Origin),
			Targets: []string{},
			Params:  []parameterMetadata{},
		}
		for _, target := range decl.Targets {
			dm.Targets = append(dm.Targets, target.String())
		}
		for _, param := range decl.Params {
			dm.Params = append(dm.Params, parameterMetadata{
				Name:       param.Name,
				Type:       param.Type.String(),
				HasDefault: param.HasDefault,
				Default:    param.Default,
			})
		}
		if decl.Attach != nil {
			dm.Attach = &attachMetadata{ContextType: decl.Attach.ContextType}
		}
		meta.Declarations = append(meta.Declarations, dm)
	}

	for _, use := range bound.Uses {
		um := useMetadata{
			Attribute: use.Attribute.Name,
			Element:   use.Element.ElementName(),
			Kind:      use.Element.Kind().String(),
			Args:      []argumentMetadata{},
		}
		for _, arg := range use.Args {
			um.Args = append(um.Args, argumentMetadata{
				Name:     arg.Name,
				Value:    arg.Value,
				Explicit: arg.Explicit,
			})
		}
		meta.Uses = append(meta.Uses, um)

		if use.Attribute.Attach != nil {
			meta.Bootstrap = append(meta.Bootstrap, bootstrapEntry{
				Attribute: use.Attribute.Name,
				Element:   use.Element.ElementName(),
				Context:   use.Attribute.Attach.ContextType,
			})
		}
	}

	encoded, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding build metadata: %w", err)
	}
	return append(encoded, '\n'), nil
}
