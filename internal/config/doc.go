// Package config provides 12-factor configuration management for the
// flowchart document pipeline.
//
// Configuration is loaded from environment variables with sensible defaults
// matching the service's standard directory layout.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host)
//   - Generator: graph text generator endpoint, model, and timeout
//   - Render: PDF template used for output documents
//   - Storage: session, output, temp, and template directories
//   - Logging: log level and output format
//   - RateLimit: per-IP rate limiting configuration
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Server running on %s:%s\n", cfg.Server.Host, cfg.Server.Port)
//
// Environment Variables:
//   - PORT, HOST
//   - GENERATOR_API_KEY, GENERATOR_MODEL, GENERATOR_BASE_URL, GENERATOR_TIMEOUT
//   - PDF_TEMPLATE, SESSION_DIR, OUTPUT_DIR, TEMP_DIR, TEMPLATE_DIR
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
package config
