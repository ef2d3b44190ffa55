// Package source loads table rows and column declarations from files and
// provides the Service used by remote-mode tables.
//
// MemoryService stands in for a server-side data endpoint: it sorts and pages a
// dataset per Query so that remote-mode tables can be driven without a network.
// CachedService wraps any Service and replays equivalent queries until a TTL expires.
package source
