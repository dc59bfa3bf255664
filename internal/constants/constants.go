// Package constants provides application-wide constant values
// used throughout the logging core. These constants define
// environment names, default sizes, and other fixed values
// to ensure consistency across the codebase.
package constants

import "time"

const (
	// NonProductionEnvironment is the environment name for non-production environments.
	NonProductionEnvironment = "development"
	// DefaultTimeout is the default timeout for metrics emission.
	DefaultTimeout = 5 * time.Second
)
