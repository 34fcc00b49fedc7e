package shipment

import "routing/internal/pkg/errs"

// Status is the terminal outcome recorded for a shipment.
type Status string

const (
	StatusUnknown   Status = ""
	StatusInTransit Status = "IN_TRANSIT"
	StatusDelivered Status = "DELIVERED"
	StatusRTO       Status = "RTO"
	StatusLost      Status = "LOST"
)

var validStatuses = map[Status]bool{
	StatusInTransit: true,
	StatusDelivered: true,
	StatusRTO:       true,
	StatusLost:      true,
}

// Validate checks that the status is one of the known values.
func (s Status) Validate() error {
	if !validStatuses[s] {
		return errs.NewValueIsInvalidError("shipment status")
	}
	return nil
}

func (s Status) String() string {
	return string(s)
}
