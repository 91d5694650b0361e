package schema

import "strings"

// voidElements lists the tags that never have children or a closing tag.
// https://html.spec.whatwg.org/#void-elements
var voidElements = newSet(
	"area", "base", "br", "col", "embed", "hr", "img", "input", "link",
	"meta", "param", "source", "track", "wbr",
)

// svgElements lists tag names that only exist in the SVG namespace. "a",
// "script", "style" and "title" are shared with HTML and resolved by context.
var svgElements = newSet(
	"altGlyph", "altGlyphDef", "altGlyphItem", "animate", "animateColor",
	"animateMotion", "animateTransform", "circle", "clipPath", "color-profile",
	"cursor", "defs", "desc", "ellipse", "feBlend", "feColorMatrix",
	"feComponentTransfer", "feComposite", "feConvolveMatrix", "feDiffuseLighting",
	"feDisplacementMap", "feDistantLight", "feDropShadow", "feFlood", "feFuncA",
	"feFuncB", "feFuncG", "feFuncR", "feGaussianBlur", "feImage", "feMerge",
	"feMergeNode", "feMorphology", "feOffset", "fePointLight", "feSpecularLighting",
	"feSpotLight", "feTile", "feTurbulence", "filter", "font", "font-face",
	"font-face-format", "font-face-name", "font-face-src", "font-face-uri",
	"foreignObject", "g", "glyph", "glyphRef", "hkern", "image", "line",
	"linearGradient", "marker", "mask", "metadata", "missing-glyph", "mpath",
	"path", "pattern", "polygon", "polyline", "radialGradient", "rect",
	"set", "stop", "svg", "switch", "symbol", "text", "textPath", "tref",
	"tspan", "use", "view", "vkern",
)

// booleanAttributes are attributes whose presence alone carries meaning; a
// static true value renders as a bare attribute.
var booleanAttributes = newSet(
	"allowfullscreen", "async", "autofocus", "autoplay", "checked", "controls",
	"default", "disabled", "formnovalidate", "hidden", "indeterminate", "inert",
	"ismap", "loop", "multiple", "muted", "nomodule", "novalidate", "open",
	"playsinline", "readonly", "required", "reversed", "seamless", "selected",
)

// domProperties are names routed through direct property assignment on HTML
// elements instead of setAttribute.
var domProperties = newSet(
	"className", "value", "readOnly", "formNoValidate", "isMap", "noModule",
	"playsInline", "allowfullscreen", "async", "autofocus", "autoplay",
	"checked", "controls", "default", "disabled", "hidden", "indeterminate",
	"inert", "loop", "multiple", "muted", "open", "required", "reversed",
	"seamless", "selected",
)

// childProperties replace an element's content rather than an attribute.
var childProperties = newSet("innerHTML", "textContent", "innerText", "children")

// attributeAliases maps JSX attribute names to the markup attribute emitted.
var attributeAliases = map[string]string{
	"className": "class",
	"htmlFor":   "for",
}

// propertyAliases maps JSX attribute names to the IDL property assigned.
var propertyAliases = map[string]string{
	"class":          "className",
	"formnovalidate": "formNoValidate",
	"ismap":          "isMap",
	"nomodule":       "noModule",
	"playsinline":    "playsInline",
	"readonly":       "readOnly",
}

// delegatedEvents is the default set of event names handled through the
// shared delegation dispatch point.
var delegatedEvents = newSet(
	"beforeinput", "click", "dblclick", "contextmenu", "focusin", "focusout",
	"input", "keydown", "keyup", "mousedown", "mousemove", "mouseout",
	"mouseover", "mouseup", "pointerdown", "pointermove", "pointerout",
	"pointerover", "pointerup", "touchend", "touchmove", "touchstart",
)

func newSet(names ...string) map[string]bool {
	s := make(map[string]bool, len(names))
	for _, n := range names {
		s[n] = true
	}
	return s
}

// IsVoidElement reports whether tagName never has children or a closing tag.
func IsVoidElement(tagName string) bool {
	return voidElements[strings.ToLower(tagName)]
}

// IsSVGElement reports whether tagName belongs to the SVG namespace.
func IsSVGElement(tagName string) bool {
	return svgElements[tagName]
}

// IsCustomElement reports whether tagName names a custom element. Hyphenated
// tags bypass the IDL-property fast paths.
func IsCustomElement(tagName string) bool {
	return strings.Contains(tagName, "-")
}

// IsBooleanAttribute reports whether name is a boolean attribute.
func IsBooleanAttribute(name string) bool {
	return booleanAttributes[strings.ToLower(name)]
}

// IsDelegatedEvent reports whether the lowercase event name is in the default
// delegation allow-list.
func IsDelegatedEvent(name string) bool {
	return delegatedEvents[name]
}

// IsChildProperty reports whether name replaces element content.
func IsChildProperty(name string) bool {
	return childProperties[name]
}

// AttributeAlias returns the markup attribute name for a JSX attribute name.
func AttributeAlias(name string) string {
	if alias, ok := attributeAliases[name]; ok {
		return alias
	}
	return name
}

// PropertyAlias returns the IDL property name for a JSX attribute name, or ""
// when the name has no property form.
func PropertyAlias(name string) string {
	if alias, ok := propertyAliases[name]; ok {
		return alias
	}
	if domProperties[name] {
		return name
	}
	return ""
}
