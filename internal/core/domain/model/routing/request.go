package routing

import (
	"errors"
	"fmt"

	"routing/internal/core/domain/model/kernel"
	"routing/internal/pkg/errs"
	"routing/internal/pkg/guard"
)

// ErrRequestIsNotConstructed is returned when a Request instance was not
// created through the NewRequest factory method.
var ErrRequestIsNotConstructed = errors.New("RoutingRequest must be created via NewRequest constructor")

// RequestParams carries the inputs for NewRequest.
type RequestParams struct {
	WeightKg           float64
	Dimensions         kernel.Dimensions
	OriginPincode      string
	DestinationPincode string
	PaymentMode        kernel.PaymentMode
	Profile            PriorityProfile
	Express            bool

	// PreferredCarrierID, when set, boosts that carrier's final score.
	PreferredCarrierID *kernel.UUID

	// MaxCost and MaxDeliveryDays are hard constraints. Candidates exceeding
	// either are excluded before ranking, never merely ranked lower.
	MaxCost         *float64
	MaxDeliveryDays *int
}

// Request is the immutable input to carrier selection. The destination zone
// is classified once at construction so every candidate is evaluated against
// the same zone.
type Request struct {
	weightKg           float64
	dims               kernel.Dimensions
	originPincode      string
	destinationPincode string
	zone               kernel.Zone
	paymentMode        kernel.PaymentMode
	profile            PriorityProfile
	express            bool
	preferredCarrierID *kernel.UUID
	maxCost            *float64
	maxDeliveryDays    *int
	guard              guard.ConstructorGuard
}

// NewRequest creates a validated routing Request and classifies the shipping
// zone from the pincode pair.
func NewRequest(params RequestParams) (Request, error) {
	if params.WeightKg <= 0 {
		return Request{}, errs.NewValueIsInvalidErrorWithCause("weightKg",
			fmt.Errorf("%v is not greater than 0", params.WeightKg))
	}
	if err := params.Dimensions.Validate(); err != nil {
		return Request{}, err
	}
	if err := params.PaymentMode.Validate(); err != nil {
		return Request{}, err
	}
	if err := params.Profile.Validate(); err != nil {
		return Request{}, err
	}
	if params.PreferredCarrierID != nil {
		if err := params.PreferredCarrierID.Validate(); err != nil {
			return Request{}, fmt.Errorf("preferredCarrierID: %w", err)
		}
	}
	if params.MaxCost != nil && *params.MaxCost <= 0 {
		return Request{}, errs.NewValueIsInvalidErrorWithCause("maxCost",
			fmt.Errorf("%v is not greater than 0", *params.MaxCost))
	}
	if params.MaxDeliveryDays != nil && *params.MaxDeliveryDays <= 0 {
		return Request{}, errs.NewValueIsInvalidErrorWithCause("maxDeliveryDays",
			fmt.Errorf("%v is not greater than 0", *params.MaxDeliveryDays))
	}

	zone, err := kernel.ClassifyZone(params.OriginPincode, params.DestinationPincode)
	if err != nil {
		return Request{}, err
	}

	return Request{
		weightKg:           params.WeightKg,
		dims:               params.Dimensions,
		originPincode:      params.OriginPincode,
		destinationPincode: params.DestinationPincode,
		zone:               zone,
		paymentMode:        params.PaymentMode,
		profile:            params.Profile,
		express:            params.Express,
		preferredCarrierID: params.PreferredCarrierID,
		maxCost:            params.MaxCost,
		maxDeliveryDays:    params.MaxDeliveryDays,
		guard:              guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Request was created via NewRequest.
func (r Request) Validate() error {
	return r.guard.Validate(ErrRequestIsNotConstructed)
}

// WeightKg returns the actual parcel weight.
func (r Request) WeightKg() float64 {
	return r.weightKg
}

// Dimensions returns the parcel dimensions.
func (r Request) Dimensions() kernel.Dimensions {
	return r.dims
}

// Zone returns the shipping zone classified from the pincode pair.
func (r Request) Zone() kernel.Zone {
	return r.zone
}

// PaymentMode returns the payment mode of the order.
func (r Request) PaymentMode() kernel.PaymentMode {
	return r.paymentMode
}

// Profile returns the merchant's weighting scheme.
func (r Request) Profile() PriorityProfile {
	return r.profile
}

// Express reports whether express service was requested.
func (r Request) Express() bool {
	return r.express
}

// PreferredCarrierID returns the merchant's preferred carrier, nil when none.
func (r Request) PreferredCarrierID() *kernel.UUID {
	return r.preferredCarrierID
}

// MaxCost returns the cost ceiling constraint, nil when unconstrained.
func (r Request) MaxCost() *float64 {
	return r.maxCost
}

// MaxDeliveryDays returns the delivery time ceiling, nil when unconstrained.
func (r Request) MaxDeliveryDays() *int {
	return r.maxDeliveryDays
}
