package attrs

// Context is the value passed to an attach hook. The concrete type depends
// on the target kind of the attribute's declaration.
type Context interface {
	// Element returns the qualified name of the decorated element
	Element() string
	// ContextType returns the context type name used in declarations
	ContextType() string
}

// MethodContext is passed to attach hooks on Method and Function targets.
type MethodContext struct {
	element string
}

// Element returns the qualified method or function name.
func (c MethodContext) Element() string { return c.element }

// ContextType returns "MethodContext".
func (c MethodContext) ContextType() string { return "MethodContext" }

// ValueContext is passed to attach hooks on Property, Parameter, and
// Constant targets.
type ValueContext struct {
	element string
}

// Element returns the qualified property, parameter, or constant name.
func (c ValueContext) Element() string { return c.element }

// ContextType returns "ValueContext".
func (c ValueContext) ContextType() string { return "ValueContext" }

// InstanceContext is passed to attach hooks on Class targets.
type InstanceContext struct {
	element string
}

// Element returns the class name.
func (c InstanceContext) Element() string { return c.element }

// ContextType returns "InstanceContext".
func (c InstanceContext) ContextType() string { return "InstanceContext" }

// contextFor builds the context value named by a bootstrap entry.
func contextFor(entry BootstrapEntry) Context {
	switch entry.Context {
	case "MethodContext":
		return MethodContext{element: entry.Element}
	case "ValueContext":
		return ValueContext{element: entry.Element}
	case "InstanceContext":
		return InstanceContext{element: entry.Element}
	default:
		return nil
	}
}
