package attrs

import (
	"fmt"
	"iter"
)

// Instance is a reconstructed attribute value: the declaration it was built
// from plus the complete argument map, defaults included.
type Instance struct {
	Attribute string
	Element   string
	Fields    map[string]interface{}
}

// Field returns a single argument value by parameter name.
func (in Instance) Field(name string) (interface{}, bool) {
	v, ok := in.Fields[name]
	return v, ok
}

// Attributes returns a lazy sequence of the attribute instances attached to
// an element, in source order (top annotation first). The sequence is finite
// and restartable; repeated annotations yield one instance each.
func Attributes(element string) iter.Seq[Instance] {
	return func(yield func(Instance) bool) {
		globalRegistry.mu.RLock()
		uses := append([]UseMetadata(nil), globalRegistry.byElement[element]...)
		globalRegistry.mu.RUnlock()

		for _, use := range uses {
			if !yield(instanceFromUse(use)) {
				return
			}
		}
	}
}

// AttributesNamed returns the instances of a single attribute on an element,
// in source order.
func AttributesNamed(element, attribute string) iter.Seq[Instance] {
	return func(yield func(Instance) bool) {
		for instance := range Attributes(element) {
			if instance.Attribute != attribute {
				continue
			}
			if !yield(instance) {
				return
			}
		}
	}
}

// ElementsWith returns the qualified names of every element decorated with
// the given attribute, in bootstrap order.
func ElementsWith(attribute string) []string {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	elements := []string{}
	seen := map[string]bool{}
	for _, use := range globalRegistry.byAttribute[attribute] {
		if !seen[use.Element] {
			seen[use.Element] = true
			elements = append(elements, use.Element)
		}
	}
	return elements
}

// NewInstance constructs an attribute instance from explicit arguments,
// merging declaration defaults for omitted parameters. Unknown parameters
// and missing required parameters are errors.
func NewInstance(attribute string, args map[string]interface{}) (Instance, error) {
	decl, ok := Declaration(attribute)
	if !ok {
		return Instance{}, fmt.Errorf("attrs: unknown attribute %s", attribute)
	}

	for name := range args {
		if _, known := decl.Param(name); !known {
			return Instance{}, fmt.Errorf("attrs: attribute %s has no parameter %s", attribute, name)
		}
	}

	fields := make(map[string]interface{}, len(decl.Params))
	for _, param := range decl.Params {
		if v, given := args[param.Name]; given {
			fields[param.Name] = v
			continue
		}
		if !param.HasDefault {
			return Instance{}, fmt.Errorf("attrs: attribute %s missing required parameter %s", attribute, param.Name)
		}
		fields[param.Name] = param.Default
	}

	return Instance{Attribute: attribute, Fields: fields}, nil
}

// instanceFromUse materializes a bound use into an Instance.
func instanceFromUse(use UseMetadata) Instance {
	fields := make(map[string]interface{}, len(use.Args))
	for _, arg := range use.Args {
		fields[arg.Name] = arg.Value
	}
	return Instance{
		Attribute: use.Attribute,
		Element:   use.Element,
		Fields:    fields,
	}
}
