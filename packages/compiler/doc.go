// Package compiler lowers JSX markup into DOM clone-and-patch code or
// server-side string-template rendering code.
//
// The pipeline: a markup parser produces a syntax tree (package jsx) with
// embedded expressions (package expression_parser); a single post-order
// transform walk (package transform) classifies expressions as static or
// reactive, hoists repeated static markup into indexed templates and lowers
// each top-level JSX boundary through the configured backend; the result is
// printed from a JavaScript output AST (package output) in one pass.
//
// Main sub-packages:
//
//   - jsx: markup syntax tree and parser
//   - expression_parser: expression syntax tree, lexer and parser
//   - schema: element/attribute tables shared by both backends
//   - transform: the static/dynamic classifier, IR and backend emitters
//   - output: JavaScript output AST and printer
//   - config: compiler options
//   - util: source files, locations and diagnostics
package compiler
