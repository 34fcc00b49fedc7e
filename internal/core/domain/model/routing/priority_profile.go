package routing

import "routing/internal/pkg/errs"

// PriorityProfile names the weighting scheme a merchant picked for ranking
// carriers.
type PriorityProfile string

const (
	ProfileUnknown     PriorityProfile = ""
	ProfileCost        PriorityProfile = "COST"
	ProfileSpeed       PriorityProfile = "SPEED"
	ProfileReliability PriorityProfile = "RELIABILITY"
	ProfileBalanced    PriorityProfile = "BALANCED"
)

var validProfiles = map[PriorityProfile]bool{
	ProfileCost:        true,
	ProfileSpeed:       true,
	ProfileReliability: true,
	ProfileBalanced:    true,
}

// Validate checks that the profile is one of the known weighting schemes.
func (p PriorityProfile) Validate() error {
	if !validProfiles[p] {
		return errs.NewValueIsInvalidError("priority profile")
	}
	return nil
}

func (p PriorityProfile) String() string {
	return string(p)
}
