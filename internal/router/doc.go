// Package router maps inbound chat updates to catalog, gating, and workflow
// operations. It owns every line of user-facing text; the services below it
// return data and typed errors only.
package router
