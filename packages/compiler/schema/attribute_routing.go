package schema

// BindingKind classifies how a dynamic attribute value reaches the element.
// Both backends consume the same routing: the DOM emitter picks the runtime
// setter, the SSR emitter picks the escape policy.
type BindingKind int

const (
	// BindingKindAttribute is the generic setAttribute fallback.
	BindingKindAttribute BindingKind = iota
	// BindingKindProperty assigns a whitelisted IDL property directly.
	BindingKindProperty
	// BindingKindClassProperty assigns className (HTML fast path).
	BindingKindClassProperty
	// BindingKindClassAttribute sets the class attribute (SVG path).
	BindingKindClassAttribute
	// BindingKindClassList applies a class-name→boolean map.
	BindingKindClassList
	// BindingKindStyle merges a style object or string.
	BindingKindStyle
	// BindingKindTextContent assigns a text payload, escaped on the server.
	BindingKindTextContent
	// BindingKindInnerHTML assigns markup verbatim, never escaped.
	BindingKindInnerHTML
)

// RouteAttribute resolves a dynamic attribute name against the shared routing
// table. SVG elements never take the className property path, and custom
// elements bypass the IDL-property fast path entirely.
func RouteAttribute(name string, isSVG, isCustomElement bool) BindingKind {
	switch name {
	case "class", "className":
		if isSVG {
			return BindingKindClassAttribute
		}
		return BindingKindClassProperty
	case "classList":
		return BindingKindClassList
	case "style":
		return BindingKindStyle
	case "innerHTML":
		return BindingKindInnerHTML
	case "textContent", "innerText":
		return BindingKindTextContent
	}
	if !isSVG && !isCustomElement && PropertyAlias(name) != "" {
		return BindingKindProperty
	}
	return BindingKindAttribute
}
