// Package observability records shell session activity as structured JSON
// Lines events and derives activity metrics from that log on demand.
package observability
