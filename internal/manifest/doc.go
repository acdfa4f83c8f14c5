// Package manifest reads and validates fabric.mod.json files. Validation
// uses an embedded JSON Schema describing the fields the Fabric loader
// understands; results are reported as issues rather than errors so the
// generator can surface them as warnings.
package manifest
