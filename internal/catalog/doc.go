// Package catalog exposes the film table to the router, workflow engine, and
// CLI: point lookup by code, create with a uniqueness guarantee, removal with
// accurate miss reporting, and insertion-ordered enumeration.
package catalog
