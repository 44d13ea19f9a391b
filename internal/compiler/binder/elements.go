package binder

import "github.com/strata-lang/strata/internal/compiler/ast"

// CollectElements walks a program and returns every annotatable element in
// bootstrap order: top-level declarations in source order, a class before its
// members, members top to bottom, and a method or function before its
// parameters (left to right). Runtime attach hooks fire in exactly this order.
func CollectElements(program *ast.Program) []ast.Element {
	elements := []ast.Element{}

	for _, decl := range program.Declarations {
		switch d := decl.(type) {
		case *ast.AttributeDeclNode:
			elements = append(elements, d)

		case *ast.ClassNode:
			elements = append(elements, d)
			for _, member := range d.Members {
				switch m := member.(type) {
				case *ast.MethodNode:
					elements = append(elements, m)
					for _, param := range m.Params {
						elements = append(elements, param)
					}
				case *ast.PropertyNode:
					elements = append(elements, m)
				case *ast.ConstantNode:
					elements = append(elements, m)
				}
			}

		case *ast.FunctionNode:
			elements = append(elements, d)
			for _, param := range d.Params {
				elements = append(elements, param)
			}

		case *ast.ConstantNode:
			elements = append(elements, d)
		}
	}

	return elements
}

// CollectAll flattens multiple parsed files into one element list, preserving
// per-file order. Files must already be sorted by path so the combined
// bootstrap order is deterministic.
func CollectAll(programs []*ast.Program) []ast.Element {
	elements := []ast.Element{}
	for _, program := range programs {
		elements = append(elements, CollectElements(program)...)
	}
	return elements
}
