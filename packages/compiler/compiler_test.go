package compiler_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"jsxc-go/packages/compiler"
	"jsxc-go/packages/compiler/config"
)

func compile(t *testing.T, source string, opts ...config.CompilerConfigOption) string {
	t.Helper()
	code, err := compiler.Compile(source, "test.jsx", opts...)
	if err != nil {
		t.Fatalf("Compile(%q) failed: %v", source, err)
	}
	return code
}

func TestCompileDOM(t *testing.T) {
	cases := []struct {
		name   string
		source string
		want   string
	}{
		{
			"static tree collapses to a bare clone",
			`<div id="main"><h1>Hello</h1></div>`,
			"import { template as _$template } from \"solid-js/web\";\n" +
				"const _tmpl$ = _$template(`<div id=\"main\"><h1>Hello</h1></div>`);\n" +
				"const _view$ = _tmpl$();\n",
		},
		{
			"dynamic class binding over the sibling chain",
			`<div id="main"><h1 class={welcome()}>Hello</h1></div>`,
			"import { template as _$template, effect as _$effect } from \"solid-js/web\";\n" +
				"const _tmpl$ = _$template(`<div id=\"main\"><h1>Hello</h1></div>`);\n" +
				"const _view$ = (() => {\n" +
				"  const _el$ = _tmpl$(), _el$2 = _el$.firstChild;\n" +
				"  _$effect(() => _el$2.className = welcome());\n" +
				"  return _el$;\n" +
				"})();\n",
		},
		{
			"delegated click handler",
			`<button onClick={handleClick}>Go</button>`,
			"import { template as _$template, delegateEvents as _$delegateEvents } from \"solid-js/web\";\n" +
				"const _tmpl$ = _$template(`<button>Go</button>`);\n" +
				"const _view$ = (() => {\n" +
				"  const _el$ = _tmpl$();\n" +
				"  _el$.$$click = handleClick;\n" +
				"  return _el$;\n" +
				"})();\n" +
				"_$delegateEvents([\"click\"]);\n",
		},
		{
			"interior insert anchors on a marker",
			`<div>Hello {name()}!</div>`,
			"import { insert as _$insert, template as _$template } from \"solid-js/web\";\n" +
				"const _tmpl$ = _$template(`<div>Hello <!>!</div>`);\n" +
				"const _view$ = (() => {\n" +
				"  const _el$ = _tmpl$(), _el$2 = _el$.firstChild, _el$3 = _el$2.nextSibling;\n" +
				"  _$insert(_el$, () => name(), _el$3);\n" +
				"  return _el$;\n" +
				"})();\n",
		},
		{
			"trailing insert after static siblings appends against null",
			`<div><span>a</span>{tail()}</div>`,
			"import { insert as _$insert, template as _$template } from \"solid-js/web\";\n" +
				"const _tmpl$ = _$template(`<div><span>a</span></div>`);\n" +
				"const _view$ = (() => {\n" +
				"  const _el$ = _tmpl$();\n" +
				"  _$insert(_el$, () => tail(), null);\n" +
				"  return _el$;\n" +
				"})();\n",
		},
		{
			"lone expression child uses the two-argument insert",
			`<div>{content}</div>`,
			"import { insert as _$insert, template as _$template } from \"solid-js/web\";\n" +
				"const _tmpl$ = _$template(`<div></div>`);\n" +
				"const _view$ = (() => {\n" +
				"  const _el$ = _tmpl$();\n" +
				"  _$insert(_el$, () => content);\n" +
				"  return _el$;\n" +
				"})();\n",
		},
		{
			"static marker forces a one-time binding",
			`<div class={/*@once*/ color()}>x</div>`,
			"import { template as _$template } from \"solid-js/web\";\n" +
				"const _tmpl$ = _$template(`<div>x</div>`);\n" +
				"const _view$ = (() => {\n" +
				"  const _el$ = _tmpl$();\n" +
				"  _el$.className = color();\n" +
				"  return _el$;\n" +
				"})();\n",
		},
		{
			"classList binds reactively while a static style applies once",
			`<div classList={{ active: isActive() }} style={{ color: "red" }}>x</div>`,
			"import { classList as _$classList, style as _$style, template as _$template, effect as _$effect } from \"solid-js/web\";\n" +
				"const _tmpl$ = _$template(`<div>x</div>`);\n" +
				"const _view$ = (() => {\n" +
				"  const _el$ = _tmpl$();\n" +
				"  _$style(_el$, { color: \"red\" });\n" +
				"  _$effect(() => _$classList(_el$, { active: isActive() }));\n" +
				"  return _el$;\n" +
				"})();\n",
		},
		{
			"ref forwards to functions and assigns otherwise",
			`<input ref={inputEl} value={v()}/>`,
			"import { template as _$template, effect as _$effect } from \"solid-js/web\";\n" +
				"const _tmpl$ = _$template(`<input>`);\n" +
				"const _view$ = (() => {\n" +
				"  const _el$ = _tmpl$();\n" +
				"  typeof inputEl === \"function\" ? inputEl(_el$) : inputEl = _el$;\n" +
				"  _$effect(() => _el$.value = v());\n" +
				"  return _el$;\n" +
				"})();\n",
		},
		{
			"use directive receives the element and a value thunk",
			`<div use:tooltip={opts()}>x</div>`,
			"import { use as _$use, template as _$template } from \"solid-js/web\";\n" +
				"const _tmpl$ = _$template(`<div>x</div>`);\n" +
				"const _view$ = (() => {\n" +
				"  const _el$ = _tmpl$();\n" +
				"  _$use(tooltip, _el$, () => opts());\n" +
				"  return _el$;\n" +
				"})();\n",
		},
		{
			"attr and prop prefixes force the routing",
			`<div attr:data-id={id()} prop:scrollTop={top()}>x</div>`,
			"import { setAttribute as _$setAttribute, template as _$template, effect as _$effect } from \"solid-js/web\";\n" +
				"const _tmpl$ = _$template(`<div>x</div>`);\n" +
				"const _view$ = (() => {\n" +
				"  const _el$ = _tmpl$();\n" +
				"  _$effect(() => _$setAttribute(_el$, \"data-id\", id()));\n" +
				"  _$effect(() => _el$.scrollTop = top());\n" +
				"  return _el$;\n" +
				"})();\n",
		},
		{
			"non-delegated events attach listeners directly",
			`<div onMouseEnter={show}>x</div>`,
			"import { template as _$template } from \"solid-js/web\";\n" +
				"const _tmpl$ = _$template(`<div>x</div>`);\n" +
				"const _view$ = (() => {\n" +
				"  const _el$ = _tmpl$();\n" +
				"  _el$.addEventListener(\"mouseenter\", show);\n" +
				"  return _el$;\n" +
				"})();\n",
		},
		{
			"namespaced event binds verbatim with capture",
			`<div oncapture:pointerdown={trap}>x</div>`,
			"import { template as _$template } from \"solid-js/web\";\n" +
				"const _tmpl$ = _$template(`<div>x</div>`);\n" +
				"const _view$ = (() => {\n" +
				"  const _el$ = _tmpl$();\n" +
				"  _el$.addEventListener(\"pointerdown\", trap, true);\n" +
				"  return _el$;\n" +
				"})();\n",
		},
		{
			"spread routes through the runtime merger",
			`<section {...props}>{children}</section>`,
			"import { spread as _$spread, insert as _$insert, template as _$template } from \"solid-js/web\";\n" +
				"const _tmpl$ = _$template(`<section></section>`);\n" +
				"const _view$ = (() => {\n" +
				"  const _el$ = _tmpl$();\n" +
				"  _$spread(_el$, props, false, true);\n" +
				"  _$insert(_el$, () => children);\n" +
				"  return _el$;\n" +
				"})();\n",
		},
		{
			"SVG templates flag the namespace and set class as an attribute",
			`<svg class={c()}><circle cx="5"/></svg>`,
			"import { setAttribute as _$setAttribute, template as _$template, effect as _$effect } from \"solid-js/web\";\n" +
				"const _tmpl$ = _$template(`<svg><circle cx=\"5\"></circle></svg>`, true);\n" +
				"const _view$ = (() => {\n" +
				"  const _el$ = _tmpl$();\n" +
				"  _$effect(() => _$setAttribute(_el$, \"class\", c()));\n" +
				"  return _el$;\n" +
				"})();\n",
		},
		{
			"custom elements bypass the property fast path",
			`<my-widget value={v()} open/>`,
			"import { setAttribute as _$setAttribute, template as _$template, effect as _$effect } from \"solid-js/web\";\n" +
				"const _tmpl$ = _$template(`<my-widget open></my-widget>`);\n" +
				"const _view$ = (() => {\n" +
				"  const _el$ = _tmpl$();\n" +
				"  _$effect(() => _$setAttribute(_el$, \"value\", v()));\n" +
				"  return _el$;\n" +
				"})();\n",
		},
		{
			"fragments compile to arrays with memoized dynamic children",
			`<>{a()}<span>ok</span></>`,
			"import { memo as _$memo, template as _$template } from \"solid-js/web\";\n" +
				"const _tmpl$ = _$template(`<span>ok</span>`);\n" +
				"const _view$ = [_$memo(() => a()), _tmpl$()];\n",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, compile(t, tc.source)); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCompileComponents(t *testing.T) {
	cases := []struct {
		name   string
		source string
		want   string
	}{
		{
			"Show keeps when raw and lazies children and fallback",
			`<Show when={state.count} fallback={<Label>Loading</Label>}>{content()}</Show>`,
			"import { Show as _$Show, createComponent as _$createComponent } from \"solid-js/web\";\n" +
				"const _view$ = _$createComponent(_$Show, {\n" +
				"  when: state.count,\n" +
				"  get fallback() {\n" +
				"    return _$createComponent(Label, { children: \"Loading\" });\n" +
				"  },\n" +
				"  get children() {\n" +
				"    return content();\n" +
				"  }\n" +
				"});\n",
		},
		{
			"For passes each and the row callback raw",
			`<For each={items()}>{item => <li>{item.name}</li>}</For>`,
			"import { For as _$For, insert as _$insert, template as _$template, createComponent as _$createComponent } from \"solid-js/web\";\n" +
				"const _tmpl$ = _$template(`<li></li>`);\n" +
				"const _view$ = _$createComponent(_$For, {\n" +
				"  each: items(),\n" +
				"  children: item => (() => {\n" +
				"    const _el$ = _tmpl$();\n" +
				"    _$insert(_el$, () => item.name);\n" +
				"    return _el$;\n" +
				"  })()\n" +
				"});\n",
		},
		{
			"generic component props are getters only when dynamic",
			`<Card title="Hi" count={n()} render={x => x}/>`,
			"import { createComponent as _$createComponent } from \"solid-js/web\";\n" +
				"const _view$ = _$createComponent(Card, {\n" +
				"  title: \"Hi\",\n" +
				"  get count() {\n" +
				"    return n();\n" +
				"  },\n" +
				"  render: x => x\n" +
				"});\n",
		},
		{
			"component spreads merge with positional overrides",
			`<Card {...props} id="x"/>`,
			"import { mergeProps as _$mergeProps, createComponent as _$createComponent } from \"solid-js/web\";\n" +
				"const _view$ = _$createComponent(Card, _$mergeProps(props, { id: \"x\" }));\n",
		},
		{
			"member path components resolve without builtin aliasing",
			`<Layout.Header title={t()}/>`,
			"import { createComponent as _$createComponent } from \"solid-js/web\";\n" +
				"const _view$ = _$createComponent(Layout.Header, {\n" +
				"  get title() {\n" +
				"    return t();\n" +
				"  }\n" +
				"});\n",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, compile(t, tc.source)); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCompileSSR(t *testing.T) {
	ssr := func(t *testing.T, source string, opts ...config.CompilerConfigOption) string {
		t.Helper()
		opts = append([]config.CompilerConfigOption{config.WithMode(config.GenerateModeSSR)}, opts...)
		return compile(t, source, opts...)
	}

	t.Run("should escape dynamic text", func(t *testing.T) {
		want := "import { ssr as _$ssr, escape as _$escape } from \"solid-js/web\";\n" +
			"const _view$ = _$ssr`<div class=\"note\">${_$escape(body())}</div>`;\n"
		if diff := cmp.Diff(want, ssr(t, `<div class="note">{body()}</div>`)); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should escape attribute holes with the attribute flag", func(t *testing.T) {
		want := "import { ssr as _$ssr, escape as _$escape } from \"solid-js/web\";\n" +
			"const _view$ = _$ssr`<a href=\"${_$escape(url(), true)}\" class=\"${_$escape(cls(), true)}\">x</a>`;\n"
		if diff := cmp.Diff(want, ssr(t, `<a href={url()} class={cls()}>x</a>`)); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should emit innerHTML verbatim and drop client-only attributes", func(t *testing.T) {
		want := "import { ssr as _$ssr } from \"solid-js/web\";\n" +
			"const _view$ = _$ssr`<article hidden>${markup}</article>`;\n"
		if diff := cmp.Diff(want, ssr(t, `<article innerHTML={markup} hidden onClick={h} ref={el}></article>`)); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should escape a textContent payload", func(t *testing.T) {
		want := "import { ssr as _$ssr, escape as _$escape } from \"solid-js/web\";\n" +
			"const _view$ = _$ssr`<p>${_$escape(msg())}</p>`;\n"
		if diff := cmp.Diff(want, ssr(t, `<p textContent={msg()}/>`)); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should bracket dynamic holes with markers when hydratable", func(t *testing.T) {
		want := "import { ssrHydrationKey as _$ssrHydrationKey, ssr as _$ssr, escape as _$escape } from \"solid-js/web\";\n" +
			"const _view$ = _$ssr`<div${_$ssrHydrationKey()}><!--#-->${_$escape(name())}<!--/--></div>`;\n"
		if diff := cmp.Diff(want, ssr(t, `<div>{name()}</div>`, config.WithHydratable(true))); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should render spread elements through the element helper", func(t *testing.T) {
		want := "import { mergeProps as _$mergeProps, ssrElement as _$ssrElement, ssr as _$ssr } from \"solid-js/web\";\n" +
			"const _view$ = _$ssr`${_$ssrElement(\"div\", _$mergeProps(props), () => \"x\", false)}`;\n"
		if diff := cmp.Diff(want, ssr(t, `<div {...props}>x</div>`)); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should escape static text inlined into the template", func(t *testing.T) {
		got := ssr(t, `<div>a &lt; b &amp; c</div>`)
		if !strings.Contains(got, "a &lt; b &amp; c") {
			t.Errorf("static text was not re-escaped:\n%s", got)
		}
	})
}

func TestCompileModules(t *testing.T) {
	t.Run("should be deterministic", func(t *testing.T) {
		source := "<div class={a()}>x</div>;\n<div class={a()}>x</div>;"
		first := compile(t, source)
		second := compile(t, source)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("outputs differ (-first +second):\n%s", diff)
		}
	})

	t.Run("should share one template for identical markup", func(t *testing.T) {
		source := "<div class={a()}>x</div>;\n<div class={a()}>x</div>;"
		got := compile(t, source)
		if n := strings.Count(got, "_$template("); n != 1 {
			t.Errorf("template registrations = %d, want 1:\n%s", n, got)
		}
		if !strings.Contains(got, "const _view$2 = ") {
			t.Errorf("second boundary missing:\n%s", got)
		}
	})

	t.Run("should register a delegated event once per file", func(t *testing.T) {
		got := compile(t, `<div><button onClick={a}/><button onClick={b}/></div>`)
		if n := strings.Count(got, "_$delegateEvents"); n != 2 {
			// one import specifier plus one registration call
			t.Errorf("delegateEvents occurrences = %d, want 2:\n%s", n, got)
		}
		if !strings.Contains(got, "_$delegateEvents([\"click\"]);") {
			t.Errorf("missing consolidated registration:\n%s", got)
		}
	})

	t.Run("should compile universal mode through the DOM backend", func(t *testing.T) {
		source := `<div class={a()}>x</div>`
		dom := compile(t, source, config.WithMode(config.GenerateModeDOM))
		universal := compile(t, source, config.WithMode(config.GenerateModeUniversal))
		if diff := cmp.Diff(dom, universal); diff != "" {
			t.Errorf("universal output diverged (-dom +universal):\n%s", diff)
		}
	})

	t.Run("should surface parse errors with positions", func(t *testing.T) {
		_, err := compiler.Compile("<div>", "broken.jsx")
		if err == nil {
			t.Fatal("expected an error")
		}
		if !strings.Contains(err.Error(), "broken.jsx") {
			t.Errorf("error %q does not name the file", err)
		}
	})
}

func TestCompileFile(t *testing.T) {
	t.Run("should compile from disk", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "view.jsx")
		if err := os.WriteFile(path, []byte(`<p>ok</p>`), 0o644); err != nil {
			t.Fatal(err)
		}
		got, err := compiler.CompileFile(path)
		if err != nil {
			t.Fatalf("CompileFile failed: %v", err)
		}
		want := "import { template as _$template } from \"solid-js/web\";\n" +
			"const _tmpl$ = _$template(`<p>ok</p>`);\n" +
			"const _view$ = _tmpl$();\n"
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should report missing files", func(t *testing.T) {
		if _, err := compiler.CompileFile(filepath.Join(t.TempDir(), "absent.jsx")); err == nil {
			t.Error("expected an error")
		}
	})
}
