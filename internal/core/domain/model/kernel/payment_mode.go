package kernel

import (
	"fmt"

	"routing/internal/pkg/errs"
)

// PaymentMode represents how a shipment is paid for. Cash-on-delivery
// shipments attract a collection fee in the cost estimate.
type PaymentMode int

const (
	// PaymentModeUnknown represents an invalid or undefined payment mode.
	PaymentModeUnknown PaymentMode = iota

	// PaymentModePrepaid indicates the order was paid online before shipping.
	PaymentModePrepaid

	// PaymentModeCOD indicates cash is collected on delivery.
	PaymentModeCOD
)

func getPaymentModeStrings() map[PaymentMode]string {
	return map[PaymentMode]string{
		PaymentModeUnknown: "Unknown",
		PaymentModePrepaid: "Prepaid",
		PaymentModeCOD:     "COD",
	}
}

// Validate checks if the PaymentMode value is valid.
func (m PaymentMode) Validate() error {
	if m != PaymentModePrepaid && m != PaymentModeCOD {
		return errs.NewValueIsInvalidErrorWithCause("paymentMode is invalid",
			fmt.Errorf("%d is not a valid payment mode", m))
	}
	return nil
}

// String returns the human-readable name of the payment mode.
func (m PaymentMode) String() string {
	if str, ok := getPaymentModeStrings()[m]; ok {
		return str
	}
	return "Unknown"
}

// Dimensions holds parcel measurements in centimeters.
// The zero value means dimensions were not captured; volumetric weight is
// then zero and actual weight drives the chargeable weight.
type Dimensions struct {
	LengthCm float64
	WidthCm  float64
	HeightCm float64
}

// VolumeCm3 returns the parcel volume in cubic centimeters.
func (d Dimensions) VolumeCm3() float64 {
	return d.LengthCm * d.WidthCm * d.HeightCm
}

// Validate rejects negative measurements. All-zero dimensions are allowed.
func (d Dimensions) Validate() error {
	if d.LengthCm < 0 || d.WidthCm < 0 || d.HeightCm < 0 {
		return errs.NewValueIsInvalidError("dimensions must not be negative")
	}
	return nil
}
