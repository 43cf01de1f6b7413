// Package logging configures the zap logger shared by the CLI and the form
// core. Library code receives loggers through options and falls back to
// GetLogger, which stays silent unless a level is configured.
package logging
