package attrs

import (
	"encoding/json"
	"fmt"
	"sync"
)

// globalRegistry is the process-wide attribute registry. Generated code and
// tooling register build metadata at init time.
var globalRegistry = newRegistry()

type attrRegistry struct {
	mu           sync.RWMutex
	buildID      string
	declarations map[string]DeclarationMetadata
	byElement    map[string][]UseMetadata
	byAttribute  map[string][]UseMetadata
	uses         []UseMetadata
	bootstrap    []BootstrapEntry
	runList      []UseMetadata // uses whose attribute declares an attach hook
}

func newRegistry() *attrRegistry {
	return &attrRegistry{
		declarations: make(map[string]DeclarationMetadata),
		byElement:    make(map[string][]UseMetadata),
		byAttribute:  make(map[string][]UseMetadata),
	}
}

// RegisterMetadata loads build metadata from its JSON encoding into the
// global registry. Registering multiple builds accumulates; duplicate
// declaration names across builds are rejected.
func RegisterMetadata(data []byte) error {
	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return fmt.Errorf("attrs: invalid metadata: %w", err)
	}
	if meta.SchemaVersion != 1 {
		return fmt.Errorf("attrs: unsupported metadata schema version %d", meta.SchemaVersion)
	}
	return globalRegistry.register(&meta)
}

func (r *attrRegistry) register(meta *Metadata) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, decl := range meta.Declarations {
		if _, exists := r.declarations[decl.Name]; exists {
			return fmt.Errorf("attrs: attribute %s registered twice", decl.Name)
		}
	}

	for _, decl := range meta.Declarations {
		normalizeDeclaration(&decl)
		r.declarations[decl.Name] = decl
	}

	for _, use := range meta.Uses {
		decl, ok := r.declarations[use.Attribute]
		if !ok {
			return fmt.Errorf("attrs: use of unregistered attribute %s on %s", use.Attribute, use.Element)
		}
		normalizeUse(&use, &decl)
		r.uses = append(r.uses, use)
		r.byElement[use.Element] = append(r.byElement[use.Element], use)
		r.byAttribute[use.Attribute] = append(r.byAttribute[use.Attribute], use)
		if decl.Attach != nil {
			r.runList = append(r.runList, use)
		}
	}

	r.bootstrap = append(r.bootstrap, meta.Bootstrap...)
	r.buildID = meta.BuildID
	return nil
}

// normalizeDeclaration restores integer-typed defaults that JSON decoding
// widened to float64.
func normalizeDeclaration(decl *DeclarationMetadata) {
	for i := range decl.Params {
		decl.Params[i].Default = normalizeValue(decl.Params[i].Default, decl.Params[i].Type)
	}
}

// normalizeUse restores integer-typed argument values using the declared
// parameter types.
func normalizeUse(use *UseMetadata, decl *DeclarationMetadata) {
	for i := range use.Args {
		param, ok := decl.Param(use.Args[i].Name)
		if !ok {
			continue
		}
		use.Args[i].Value = normalizeValue(use.Args[i].Value, param.Type)
	}
}

// normalizeValue converts JSON numbers back to the declared Strata type.
// JSON has one number type, so Int values arrive as float64.
func normalizeValue(value interface{}, declaredType string) interface{} {
	switch declaredType {
	case "Int":
		if f, ok := value.(float64); ok {
			return int64(f)
		}
	case "Array<Int>":
		if items, ok := value.([]interface{}); ok {
			normalized := make([]interface{}, len(items))
			for i, item := range items {
				normalized[i] = normalizeValue(item, "Int")
			}
			return normalized
		}
	}
	return value
}

// BuildID returns the ID of the most recently registered build.
func BuildID() string {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	return globalRegistry.buildID
}

// Declaration looks up a registered attribute declaration by name.
func Declaration(name string) (DeclarationMetadata, bool) {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	decl, ok := globalRegistry.declarations[name]
	return decl, ok
}

// Declarations returns all registered declarations.
func Declarations() []DeclarationMetadata {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	decls := make([]DeclarationMetadata, 0, len(globalRegistry.declarations))
	for _, decl := range globalRegistry.declarations {
		decls = append(decls, decl)
	}
	return decls
}

// Reset clears the global registry. Intended for tests.
func Reset() {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.buildID = ""
	globalRegistry.declarations = make(map[string]DeclarationMetadata)
	globalRegistry.byElement = make(map[string][]UseMetadata)
	globalRegistry.byAttribute = make(map[string][]UseMetadata)
	globalRegistry.uses = nil
	globalRegistry.bootstrap = nil
	globalRegistry.runList = nil
}

// Uses returns every bound annotation in bootstrap order.
func Uses() []UseMetadata {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	return append([]UseMetadata(nil), globalRegistry.uses...)
}

// BootstrapEntries returns the attach hook invocations in firing order.
func BootstrapEntries() []BootstrapEntry {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	return append([]BootstrapEntry(nil), globalRegistry.bootstrap...)
}
