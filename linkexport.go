// Package linkexport extracts hyperlink URLs from a page's document, filters
// and sorts them, and exports the result to the clipboard or a text file.
//
// This package contains domain types, the filter engine and interfaces
// following Ben Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., sqlite/, rod/,
// goquery/).
package linkexport
