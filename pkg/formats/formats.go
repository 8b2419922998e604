// Package formats provides parsers for mesh file formats.
//
// OFF (Object File Format) is implemented in off.go: a plain-text
// face-vertex description with a fixed header, vertex coordinates and
// polygon index lists.
package formats
