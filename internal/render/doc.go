// Package render writes a table as bordered text, JSON or NDJSON.
package render
