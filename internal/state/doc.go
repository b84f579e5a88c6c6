// Package state defines the flat runtime key-value store a paywall renders
// against and the key conventions used to synthesize entries.
//
// The store is owned exclusively by the view model; every other component
// reads it through a resolver function. Keys follow fixed conventions:
//
//   - "section_<id>"      current index of a section switcher
//   - "group_<id>"        selected product id within a product group
//   - opened sub-screen   the id of the bottom-sheet screen currently open
//
// The store is reset wholesale (never merged) each time new configuration
// data arrives.
package state
