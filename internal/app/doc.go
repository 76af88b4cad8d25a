// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the compile-and-emit lifecycle, decoupled
// from any specific entrypoint like a CLI.
//
// An App loads workflow manifests, registers each workflow in a catalog
// (which compiles it exactly once), and writes the resulting graph
// documents to its output writer for the external execution engine to pick
// up. It never executes anything itself.
package app
