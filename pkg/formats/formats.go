// Package formats provides parsers for the resource-pack rig interchange files:
// rig documents (JSON) and extracted hierarchy tables (YAML).
package formats
