// Package core contains the business logic for the Copus edge pipeline.
// It is designed to be framework-agnostic and can be used independently
// of any web framework or infrastructure concerns.
//
// The core package is organized into several sub-packages:
//
// - domain: Pure domain models (Article, UserProfile, Space, etc.)
// - content: Content API client with envelope unwrapping
// - seo: Metadata merging and JSON-LD synthesis
// - rewrite: Streaming HTML head/body rewriting
// - discovery: Curator discovery and ranking
// - sitemap: Sitemap assembly from the content listing
// - policy: Cache-control classes and bot detection
// - errors: Custom error types for better error handling
// - interfaces: Contracts for external dependencies (cache, HTTP, logger)
//
// # Design Principles
//
// The core package follows clean architecture principles:
// - No external framework dependencies
// - All external dependencies are injected via interfaces
// - Business logic is testable in isolation
// - Domain models are free from persistence concerns
package core
