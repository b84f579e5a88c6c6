// Package configfile loads paywall view configurations from YAML fixture
// files. It is local tooling input for the CLI, the preview server and
// tests; the backend's own configuration schema and transport stay outside
// this module.
//
// A fixture declares the screen template, the element tree, the text, asset
// and product maps, and the initial runtime state. Parse validates the
// document and Build turns it into the runtime configuration the view model
// mounts.
package configfile
