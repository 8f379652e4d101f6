// Package formats provides parsers for Wavefront OBJ models and MTL
// material libraries.
//
// ParseOBJ turns OBJ source into a Model of interleaved, GPU-ready shapes.
// Material libraries named by the source are fetched through the model's
// Context and parsed with ParseMTL.
package formats
