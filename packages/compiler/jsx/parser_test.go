package jsx_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"jsxc-go/packages/compiler/expression_parser"
	"jsxc-go/packages/compiler/jsx"
)

// nodeSummary flattens a parsed tree into a comparable shape. Expression
// values are reduced to a "{expr}" placeholder; their parsing is covered by
// the expression parser tests.
type nodeSummary struct {
	Kind     string
	Name     string
	Text     string
	Attrs    []string
	Children []nodeSummary
}

func summarize(node jsx.Node) nodeSummary {
	switch n := node.(type) {
	case *jsx.Element:
		s := nodeSummary{Kind: "element", Name: n.Name}
		for _, attrNode := range n.Attributes {
			s.Attrs = append(s.Attrs, summarizeAttr(attrNode))
		}
		for _, child := range n.Children {
			s.Children = append(s.Children, summarize(child))
		}
		return s
	case *jsx.Fragment:
		s := nodeSummary{Kind: "fragment"}
		for _, child := range n.Children {
			s.Children = append(s.Children, summarize(child))
		}
		return s
	case *jsx.Text:
		return nodeSummary{Kind: "text", Text: n.Value}
	case *jsx.ExpressionContainer:
		return nodeSummary{Kind: "expr", Text: n.LeadingComment}
	}
	return nodeSummary{Kind: "unknown"}
}

func summarizeAttr(attrNode jsx.AttributeNode) string {
	switch a := attrNode.(type) {
	case *jsx.SpreadAttribute:
		return "{...}"
	case *jsx.Attribute:
		switch {
		case a.Expression != nil:
			return a.Name + "={expr}"
		case a.StringValue != nil:
			return a.Name + "=" + *a.StringValue
		}
		return a.Name
	}
	return "?"
}

func parse(t *testing.T, source string) jsx.Node {
	t.Helper()
	node, err := jsx.ParseTemplate(source, "test.jsx")
	if err != nil {
		t.Fatalf("ParseTemplate(%q) failed: %v", source, err)
	}
	return node
}

func TestTemplateParserElements(t *testing.T) {
	t.Run("should parse attributes in source order", func(t *testing.T) {
		got := summarize(parse(t, `<div id="main" class={danger()} hidden>text</div>`))
		want := nodeSummary{
			Kind:     "element",
			Name:     "div",
			Attrs:    []string{"id=main", "class={expr}", "hidden"},
			Children: []nodeSummary{{Kind: "text", Text: "text"}},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should parse self-closing and nested elements", func(t *testing.T) {
		got := summarize(parse(t, `<p>Hello <b>World</b><br/></p>`))
		want := nodeSummary{
			Kind: "element",
			Name: "p",
			Children: []nodeSummary{
				{Kind: "text", Text: "Hello "},
				{Kind: "element", Name: "b", Children: []nodeSummary{{Kind: "text", Text: "World"}}},
				{Kind: "element", Name: "br"},
			},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should parse spread attributes", func(t *testing.T) {
		got := summarize(parse(t, `<div {...props} id="x"/>`))
		want := nodeSummary{Kind: "element", Name: "div", Attrs: []string{"{...}", "id=x"}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should parse member component names", func(t *testing.T) {
		node := parse(t, `<Layout.Header title={t}/>`)
		element, ok := node.(*jsx.Element)
		if !ok || element.Name != "Layout.Header" {
			t.Fatalf("got %#v, want element Layout.Header", node)
		}
		if !element.IsComponent() {
			t.Error("member paths should be components")
		}
	})

	t.Run("should decode entities in text and attribute values", func(t *testing.T) {
		got := summarize(parse(t, `<span title="Tom &amp; Jerry">&lt;hi&gt;</span>`))
		want := nodeSummary{
			Kind:     "element",
			Name:     "span",
			Attrs:    []string{"title=Tom & Jerry"},
			Children: []nodeSummary{{Kind: "text", Text: "<hi>"}},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should parse fragments", func(t *testing.T) {
		got := summarize(parse(t, `<>a<br/></>`))
		want := nodeSummary{
			Kind: "fragment",
			Children: []nodeSummary{
				{Kind: "text", Text: "a"},
				{Kind: "element", Name: "br"},
			},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestTemplateParserExpressions(t *testing.T) {
	t.Run("should parse expression children", func(t *testing.T) {
		node := parse(t, `<div>{count() + 1}</div>`)
		element := node.(*jsx.Element)
		if len(element.Children) != 1 {
			t.Fatalf("child count = %d, want 1", len(element.Children))
		}
		container, ok := element.Children[0].(*jsx.ExpressionContainer)
		if !ok {
			t.Fatalf("child is %T, want ExpressionContainer", element.Children[0])
		}
		if _, ok := container.Expression.(*expression_parser.Binary); !ok {
			t.Errorf("expression is %T, want Binary", container.Expression)
		}
	})

	t.Run("should capture a leading comment on containers", func(t *testing.T) {
		node := parse(t, `<div>{/*@once*/ count()}</div>`)
		container := node.(*jsx.Element).Children[0].(*jsx.ExpressionContainer)
		if container.LeadingComment != "@once" {
			t.Errorf("LeadingComment = %q, want \"@once\"", container.LeadingComment)
		}
	})

	t.Run("should capture a leading comment on attribute values", func(t *testing.T) {
		node := parse(t, `<div class={/*@once*/ color()}/>`)
		attr := node.(*jsx.Element).Attributes[0].(*jsx.Attribute)
		if attr.LeadingComment != "@once" {
			t.Errorf("LeadingComment = %q, want \"@once\"", attr.LeadingComment)
		}
	})

	t.Run("should drop empty and comment-only containers", func(t *testing.T) {
		node := parse(t, `<div>{}{/* note */}</div>`)
		if children := node.(*jsx.Element).Children; len(children) != 0 {
			t.Errorf("child count = %d, want 0", len(children))
		}
	})

	t.Run("should parse markup nested in expressions", func(t *testing.T) {
		node := parse(t, `<div>{ok && <em>yes</em>}</div>`)
		container := node.(*jsx.Element).Children[0].(*jsx.ExpressionContainer)
		binary, ok := container.Expression.(*expression_parser.Binary)
		if !ok {
			t.Fatalf("expression is %T, want Binary", container.Expression)
		}
		embedded, ok := binary.Right.(*expression_parser.EmbeddedMarkup)
		if !ok {
			t.Fatalf("right side is %T, want EmbeddedMarkup", binary.Right)
		}
		if _, ok := embedded.Node.(*jsx.Element); !ok {
			t.Errorf("embedded node is %T, want Element", embedded.Node)
		}
	})
}

func TestTemplateParserWhitespace(t *testing.T) {
	t.Run("should drop indentation-only text between elements", func(t *testing.T) {
		source := "<div>\n  <span>a</span>\n  <span>b</span>\n</div>"
		got := summarize(parse(t, source))
		want := nodeSummary{
			Kind: "element",
			Name: "div",
			Children: []nodeSummary{
				{Kind: "element", Name: "span", Children: []nodeSummary{{Kind: "text", Text: "a"}}},
				{Kind: "element", Name: "span", Children: []nodeSummary{{Kind: "text", Text: "b"}}},
			},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should keep single-line interior whitespace", func(t *testing.T) {
		node := parse(t, `<b>Hello {x}</b>`)
		text := node.(*jsx.Element).Children[0].(*jsx.Text)
		if text.Value != "Hello " {
			t.Errorf("text = %q, want \"Hello \"", text.Value)
		}
	})
}

func TestCollapseWhitespace(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "Hello World", "Hello World"},
		{"edge newline runs dropped", "\n  Hello\n", "Hello"},
		{"interior newline run collapses", "a\n  b", "a b"},
		{"interior spaces preserved", "a  b", "a  b"},
		{"trailing space preserved", "Hello ", "Hello "},
		{"only whitespace", " \n ", ""},
		{"carriage returns stripped", "a\r\nb", "a b"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := jsx.CollapseWhitespace(tc.input); got != tc.expected {
				t.Errorf("CollapseWhitespace(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestTemplateParserModules(t *testing.T) {
	t.Run("should parse multiple templates separated by semicolons", func(t *testing.T) {
		nodes, err := jsx.ParseTemplates("<a href=\"/\">x</a>;\n<p>y</p>;", "test.jsx")
		if err != nil {
			t.Fatalf("ParseTemplates failed: %v", err)
		}
		if len(nodes) != 2 {
			t.Fatalf("template count = %d, want 2", len(nodes))
		}
	})

	t.Run("should reject a lone expression", func(t *testing.T) {
		if _, err := jsx.ParseTemplates("count()", "test.jsx"); err == nil {
			t.Error("expected an error")
		}
	})
}

func TestTemplateParserErrors(t *testing.T) {
	cases := []struct {
		source string
		msg    string
	}{
		{"<div>", "unterminated"},
		{"<div></span>", "</div>"},
		{"<div class={x y}>z</div>", "}"},
		{"<div class=>x</div>", "quoted string"},
		{"<>x", "unterminated"},
	}
	for _, tc := range cases {
		t.Run(tc.source, func(t *testing.T) {
			_, err := jsx.ParseTemplates(tc.source, "test.jsx")
			if err == nil {
				t.Fatalf("ParseTemplates(%q) succeeded, want error", tc.source)
			}
			if !strings.Contains(err.Error(), tc.msg) {
				t.Errorf("error %q does not mention %q", err, tc.msg)
			}
		})
	}
}
