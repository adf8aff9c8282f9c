// Package findable makes a website's features discoverable by AI agents.
// It extracts feature claims from a site's text with an LLM, generates
// machine-readable landing pages from the (user-edited) feature list, and
// scores how easily an AI search agent could find those features.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, gemini/, goquery/).
package findable
