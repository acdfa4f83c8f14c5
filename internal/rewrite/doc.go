// Package rewrite applies ordered literal text replacements to files. It
// treats every file as opaque text: nothing is parsed, and replacement
// inputs are not checked for being valid identifiers in any language.
package rewrite
