// Package session drives multi-step operator authoring flows. Each session
// is keyed by conversation and operator, holds partially collected fields in
// memory, and commits through the catalog or sponsor services once the final
// step is accepted. Sessions expire after an idle timeout and are discarded
// wholesale on cancellation.
package session
