package config

import "time"

// Default engine cadences and rules. The accelerated cadences used by test
// deployments are supplied through the environment, not compiled in.
const (
	DefaultAuthorityTimeout     = 10 * time.Second
	DefaultTickInterval         = 100 * time.Millisecond
	DefaultRefreshInterval      = 5 * time.Second
	DefaultStakeRefreshInterval = 1 * time.Second
	DefaultRatesRefreshInterval = 5 * time.Minute

	// DefaultStakePenaltyRate is the fraction of principal withheld when a
	// deposit is cancelled before maturity.
	DefaultStakePenaltyRate = 0.10

	DefaultEventLogRetentionDays = 90
)
