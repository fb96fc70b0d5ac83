// Package topoguia generates printable two-page hiking-route documents
// (topoguías) from a flat route record.
//
// The pipeline is: a validated record (package record) is classified against
// the MIDE difficulty scheme (package mide), expanded into a declarative
// instruction set over fixed page regions (package layout), and drawn to an
// A4-landscape PDF (package render). Package server exposes the pipeline as
// an HTTP form collector; cmd/topoguia drives it from a JSON file.
//
// This root package holds only the error taxonomy shared by the pipeline.
package topoguia
