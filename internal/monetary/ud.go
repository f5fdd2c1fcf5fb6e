// Package monetary implements the Universal Dividend calculator: the
// per-member daily credit sized so the monetary mass grows by a fixed
// fraction every semester, per the theory of relative money this ledger
// follows.
package monetary

import "time"

// Config holds the tunable parameters of the Universal Dividend formula.
type Config struct {
	// GrowthRatePerSemester is c, the semester growth rate (default 0.0488).
	GrowthRatePerSemester float64
	// SemesterDays is D, the length of a semester in days (default 183).
	SemesterDays int64
	// GenesisTime is t0, before which UD is always zero.
	GenesisTime time.Time
}

// DefaultConfig returns the default Universal Dividend parameters.
func DefaultConfig(genesis time.Time) Config {
	return Config{
		GrowthRatePerSemester: 0.0488,
		SemesterDays:          183,
		GenesisTime:           genesis,
	}
}

const secondsPerDay = 86400

// DailyUDPerMember computes the daily dividend owed to each member given
// the current monetary mass and member count at timestamp now. Returns
// zero if there are no members or now precedes genesis.
func (c Config) DailyUDPerMember(mass float64, memberCount uint64, now time.Time) float64 {
	if memberCount == 0 {
		return 0
	}
	if now.Before(c.GenesisTime) {
		return 0
	}
	return c.SemesterTotalPerMember(mass, memberCount) / float64(c.SemesterDays)
}

// SemesterTotalPerMember returns c * M / N, the per-member dividend total
// accrued over a full semester.
func (c Config) SemesterTotalPerMember(mass float64, memberCount uint64) float64 {
	if memberCount == 0 {
		return 0
	}
	return c.GrowthRatePerSemester * mass / float64(memberCount)
}

// ShouldReevaluate reports whether at least SemesterDays whole days have
// elapsed since last.
func (c Config) ShouldReevaluate(last, now time.Time) bool {
	days := int64(now.Sub(last).Hours()) / 24
	return days >= c.SemesterDays
}

// ProjectedMassAfterSemester returns M * (1 + c), the theoretical mass
// after one full semester of growth.
func (c Config) ProjectedMassAfterSemester(mass float64) float64 {
	return mass * (1 + c.GrowthRatePerSemester)
}

// DaysUntilReevaluation returns how many whole days remain until the next
// semester boundary, never negative.
func (c Config) DaysUntilReevaluation(last, now time.Time) int64 {
	daysSince := int64(now.Sub(last).Hours()) / 24
	remaining := c.SemesterDays - daysSince
	if remaining < 0 {
		return 0
	}
	return remaining
}
