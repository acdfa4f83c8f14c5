// Package scaffold generates a new Fabric mod project. It powers the
// "fabricgen new" command: the example mod template is fetched, its Java
// package directory is relocated to the requested package, and the mod id,
// entry point, author, and description are substituted throughout the
// sources, gradle.properties, and the mod JSON files.
package scaffold
