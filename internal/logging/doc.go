// Package logging builds the slog loggers used across reelgate.
//
// New constructs a logger from explicit options; NewFromConfig wires in the
// configured level, format, and log-file destination. The console handler
// emits single-line records with the component attribute promoted into the
// prefix; the JSON handler is the default off a TTY so daemon logs stay
// machine-readable.
//
// Components obtain scoped loggers via NewComponentLogger and attach typed
// attributes with the helpers in attrs.go rather than raw key/value pairs.
package logging
