// Package viewmodel orchestrates a mounted paywall: it owns the
// configuration reference, the mutable runtime state, and the resolved
// product, asset and text maps, and it is the only component allowed to
// mutate them. Renderer components read snapshots through the contexts it
// builds.
package viewmodel
