// Package sitepdf crawls a documentation site and merges its pages into a
// single paginated document.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, fpdf/, bigcache/).
package sitepdf
