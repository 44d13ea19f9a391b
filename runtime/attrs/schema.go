// Package attrs is the runtime attribute registry. The compiler emits build
// metadata describing every attribute declaration and every bound annotation;
// this package loads that metadata and exposes a reflection API plus the
// attachment scheduler that fires attach hooks in bootstrap order.
package attrs

// Metadata is the build metadata document emitted by the compiler.
type Metadata struct {
	SchemaVersion int                   `json:"schema_version"`
	BuildID       string                `json:"build_id"`
	Sources       []string              `json:"sources"`
	Declarations  []DeclarationMetadata `json:"declarations"`
	Uses          []UseMetadata         `json:"uses"`
	Bootstrap     []BootstrapEntry      `json:"bootstrap"`
}

// DeclarationMetadata describes one attribute declaration.
type DeclarationMetadata struct {
	Name    string              `json:"name"`
	Origin  string              `json:"origin"`
	Targets []string            `json:"targets"`
	Params  []ParameterMetadata `json:"params"`
	Attach  *AttachMetadata     `json:"attach,omitempty"`
}

// Param looks up a declared parameter by name.
func (d *DeclarationMetadata) Param(name string) (*ParameterMetadata, bool) {
	for i := range d.Params {
		if d.Params[i].Name == name {
			return &d.Params[i], true
		}
	}
	return nil, false
}

// ParameterMetadata describes one declared attribute parameter.
type ParameterMetadata struct {
	Name       string      `json:"name"`
	Type       string      `json:"type"`
	HasDefault bool        `json:"has_default"`
	Default    interface{} `json:"default,omitempty"`
}

// AttachMetadata describes the attach hook of a single-target declaration.
type AttachMetadata struct {
	ContextType string `json:"context_type"`
}

// UseMetadata describes one bound annotation, in bootstrap order.
type UseMetadata struct {
	Attribute string             `json:"attribute"`
	Element   string             `json:"element"`
	Kind      string             `json:"kind"`
	Args      []ArgumentMetadata `json:"args"`
}

// ArgumentMetadata is one resolved annotation argument.
type ArgumentMetadata struct {
	Name     string      `json:"name"`
	Value    interface{} `json:"value"`
	Explicit bool        `json:"explicit"`
}

// BootstrapEntry is one attach hook invocation, in firing order.
type BootstrapEntry struct {
	Attribute string `json:"attribute"`
	Element   string `json:"element"`
	Context   string `json:"context"`
}
