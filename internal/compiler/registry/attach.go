package registry

import (
	"github.com/strata-lang/strata/internal/compiler/ast"
	"github.com/strata-lang/strata/internal/compiler/diag"
)

// AttachDescriptor is a validated attach lifecycle hook. The context type is
// mandated by the declaration's single target kind and the generated runtime
// constructs the matching context value when the hook fires.
type AttachDescriptor struct {
	ContextParam string // name of the single context parameter
	ContextType  string // MethodContext, ValueContext, or InstanceContext
	Body         string // host-passthrough hook body
	Loc          ast.SourceLocation
}

// ContextTypeForTarget returns the context type an attach hook must accept
// for a given target kind.
//
//	Method, Function      -> MethodContext
//	Property, Parameter,
//	Constant              -> ValueContext
//	Class                 -> InstanceContext
func ContextTypeForTarget(kind ast.TargetKind) string {
	switch kind {
	case ast.TargetMethod, ast.TargetFunction:
		return "MethodContext"
	case ast.TargetProperty, ast.TargetParameter, ast.TargetConstant:
		return "ValueContext"
	case ast.TargetClass:
		return "InstanceContext"
	default:
		return ""
	}
}

// ResolveAttachDescriptor validates an attach hook against the declaration's
// target kind. The hook must take exactly one parameter of the mandated
// context type and return Void (or declare no return type).
func ResolveAttachDescriptor(attrName string, target ast.TargetKind, hook *ast.AttachHookNode, diags *diag.List) *AttachDescriptor {
	expected := ContextTypeForTarget(target)

	if len(hook.Params) != 1 {
		diags.Error(diag.PhaseDeclare, diag.ErrAttachSignatureMismatch, hook.Loc,
			"Attach hook of attribute %s must take exactly one parameter of type %s, got %d parameter(s)",
			attrName, expected, len(hook.Params))
		return nil
	}

	param := hook.Params[0]
	if param.Type == nil || param.Type.Kind != ast.TypePrimitive || param.Type.Name != expected {
		got := "<missing>"
		if param.Type != nil {
			got = param.Type.String()
		}
		diags.Error(diag.PhaseDeclare, diag.ErrAttachSignatureMismatch, hook.Loc,
			"Attach hook of attribute %s targets %s and must take a %s parameter, got %s",
			attrName, target, expected, got)
		return nil
	}

	if param.Default != nil {
		diags.Error(diag.PhaseDeclare, diag.ErrAttachSignatureMismatch, hook.Loc,
			"Attach hook context parameter %s of attribute %s may not have a default value",
			param.Name, attrName)
		return nil
	}

	if hook.ReturnType != "" && hook.ReturnType != "Void" {
		diags.Error(diag.PhaseDeclare, diag.ErrAttachSignatureMismatch, hook.Loc,
			"Attach hook of attribute %s must return Void, got %s", attrName, hook.ReturnType)
		return nil
	}

	return &AttachDescriptor{
		ContextParam: param.Name,
		ContextType:  expected,
		Body:         hook.Body,
		Loc:          hook.Loc,
	}
}
