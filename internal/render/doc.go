// Package render turns the workspace manifest into tool config files.
//
// Every renderer is a pure function from the manifest to file bytes,
// and output is deterministic: map-backed sections are emitted in
// sorted key order so re-rendering an unchanged manifest produces
// byte-identical files. That property is what makes drift detection
// a plain byte comparison.
//
// JSON configs (babel, eslint, prettier, package.json) are built from
// structs and marshalled with two-space indentation. The bundler
// config is JavaScript and is written line by line.
package render
