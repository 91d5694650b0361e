package transform

import (
	"fmt"

	"jsxc-go/packages/compiler/config"
	"jsxc-go/packages/compiler/output"
	"jsxc-go/packages/compiler/schema"
)

// TemplateEntry is one hoisted template, registered by index
type TemplateEntry struct {
	Markup string
	IsSVG  bool
}

// Context represents the per-file compilation state. It is created once per
// file, mutated throughout the traversal and consumed once at finalization.
// It must never be shared across concurrent compilations.
type Context struct {
	Config *config.CompilerConfig

	templates    []*TemplateEntry
	helpers      []*output.ImportSpec
	helperSet    map[string]string
	delegated    []string
	delegatedSet map[string]bool
	uidCounters  map[string]int
}

// NewContext creates a fresh Context for one compilation unit
func NewContext(cfg *config.CompilerConfig) *Context {
	return &Context{
		Config:       cfg,
		helperSet:    map[string]string{},
		delegatedSet: map[string]bool{},
		uidCounters:  map[string]int{},
	}
}

// Helper registers a runtime helper import and returns its local alias. The
// helper set only grows and is flushed exactly once at file end.
func (c *Context) Helper(name string) string {
	if alias, ok := c.helperSet[name]; ok {
		return alias
	}
	alias := "_$" + name
	c.helperSet[name] = alias
	c.helpers = append(c.helpers, &output.ImportSpec{Name: name, Alias: alias})
	return alias
}

// Helpers returns every registered helper in first-use order
func (c *Context) Helpers() []*output.ImportSpec {
	return c.helpers
}

// RegisterTemplate hoists a markup fragment and returns its permanent index.
// Identical fragments share one index.
func (c *Context) RegisterTemplate(markup string, isSVG bool) int {
	for i, entry := range c.templates {
		if entry.Markup == markup && entry.IsSVG == isSVG {
			return i
		}
	}
	c.templates = append(c.templates, &TemplateEntry{Markup: markup, IsSVG: isSVG})
	return len(c.templates) - 1
}

// Templates returns the hoisted templates in registration order
func (c *Context) Templates() []*TemplateEntry {
	return c.templates
}

// TemplateName returns the generated name of the template at an index
func TemplateName(index int) string {
	if index == 0 {
		return "_tmpl$"
	}
	return fmt.Sprintf("_tmpl$%d", index+1)
}

// DelegateEvent marks an event name for the consolidated file-wide
// registration call
func (c *Context) DelegateEvent(name string) {
	if c.delegatedSet[name] {
		return
	}
	c.delegatedSet[name] = true
	c.delegated = append(c.delegated, name)
}

// DelegatedEvents returns the delegated event names in first-use order
func (c *Context) DelegatedEvents() []string {
	return c.delegated
}

// IsDelegatedEvent checks the default table plus any configured extras
func (c *Context) IsDelegatedEvent(name string) bool {
	for _, extra := range c.Config.DelegatedEvents {
		if extra == name {
			return true
		}
	}
	return schema.IsDelegatedEvent(name)
}

// GenerateUID returns a fresh generated identifier for a prefix. The first
// identifier of a prefix carries no ordinal; identifiers are monotonic so a
// fresh context reproduces them exactly.
func (c *Context) GenerateUID(prefix string) string {
	c.uidCounters[prefix]++
	n := c.uidCounters[prefix]
	if n == 1 {
		return "_" + prefix + "$"
	}
	return fmt.Sprintf("_%s$%d", prefix, n)
}
