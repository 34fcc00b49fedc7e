package carrier

import (
	"errors"
	"fmt"
	"math"

	"routing/internal/core/domain/model/kernel"
	"routing/internal/pkg/errs"
	"routing/internal/pkg/guard"
)

// VolumetricDivisor converts parcel volume in cm³ to volumetric weight in kg.
const VolumetricDivisor = 5000.0

// halfKgSlab is the billing increment above the base half kilogram.
const halfKgSlab = 0.5

// ErrRateTableIsNotConstructed is returned when a RateTable instance was not
// created through the NewRateTable factory method.
var ErrRateTableIsNotConstructed = errors.New("RateTable must be created via NewRateTable constructor")

// RateTable is the static pricing configuration for one carrier.
// It is an immutable value object; cost estimation is a pure function of the
// table and the shipment parameters.
//
// Pricing model:
//   - chargeable weight = max(actual weight, volumetric weight)
//   - base rate covers the first half kilogram
//   - every started half-kg slab above that is billed at the per-half-kg rate
//   - express service multiplies the carriage cost
//   - metro destinations receive the carrier's metro discount
//   - COD shipments add max(minimum COD fee, cost · COD percentage)
type RateTable struct {
	baseRate          float64
	perHalfKgRate     float64
	expressMultiplier float64
	metroDiscountPct  float64
	codPercentage     float64
	minCODFee         float64
	guard             guard.ConstructorGuard
}

// NewRateTable creates a validated RateTable.
//
// Parameters:
//   - baseRate: cost of the first half kilogram (must be positive)
//   - perHalfKgRate: cost per additional started half-kg slab (must not be negative)
//   - expressMultiplier: factor applied for express service (must be >= 1)
//   - metroDiscountPct: fractional discount for metro destinations, in [0, 1)
//   - codPercentage: fractional COD collection fee, in [0, 1)
//   - minCODFee: floor for the COD fee (must not be negative)
func NewRateTable(
	baseRate, perHalfKgRate, expressMultiplier, metroDiscountPct, codPercentage, minCODFee float64,
) (RateTable, error) {
	rt := RateTable{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		rt.setBaseRate(baseRate),
		rt.setPerHalfKgRate(perHalfKgRate),
		rt.setExpressMultiplier(expressMultiplier),
		rt.setMetroDiscountPct(metroDiscountPct),
		rt.setCODPercentage(codPercentage),
		rt.setMinCODFee(minCODFee),
	); err != nil {
		return RateTable{}, err
	}

	return rt, nil
}

// Validate ensures the RateTable was created via NewRateTable.
func (rt RateTable) Validate() error {
	return rt.guard.Validate(ErrRateTableIsNotConstructed)
}

// BaseRate returns the cost of the first half kilogram.
func (rt RateTable) BaseRate() float64 {
	return rt.baseRate
}

// PerHalfKgRate returns the cost per additional started half-kg slab.
func (rt RateTable) PerHalfKgRate() float64 {
	return rt.perHalfKgRate
}

// CostBreakdown itemizes an estimate. Total is the only field callers need
// for routing; the rest exists so decisions stay explainable.
type CostBreakdown struct {
	ChargeableWeightKg float64
	CarriageCost       float64
	ExpressSurcharge   float64
	MetroDiscount      float64
	CODFee             float64
	Total              float64
}

// ChargeableWeight returns the billable weight in kg: the greater of the
// actual weight and the volumetric weight (volume / 5000).
func ChargeableWeight(actualWeightKg float64, dims kernel.Dimensions) float64 {
	return math.Max(actualWeightKg, dims.VolumeCm3()/VolumetricDivisor)
}

// EstimateCost computes the deterministic shipping cost for the given
// shipment parameters. All rounding is half-up via kernel.RoundMoney.
//
// Returns a validation error if the table is unconstructed, the weight is not
// positive, or the zone/payment mode is invalid.
func (rt RateTable) EstimateCost(
	weightKg float64,
	dims kernel.Dimensions,
	zone kernel.Zone,
	paymentMode kernel.PaymentMode,
	express bool,
) (CostBreakdown, error) {
	if err := rt.Validate(); err != nil {
		return CostBreakdown{}, err
	}
	if weightKg <= 0 {
		return CostBreakdown{}, errs.NewValueIsInvalidErrorWithCause("weightKg",
			fmt.Errorf("%v is not greater than 0", weightKg))
	}
	if err := dims.Validate(); err != nil {
		return CostBreakdown{}, err
	}
	if err := zone.Validate(); err != nil {
		return CostBreakdown{}, err
	}
	if err := paymentMode.Validate(); err != nil {
		return CostBreakdown{}, err
	}

	chargeable := ChargeableWeight(weightKg, dims)

	extraSlabs := math.Ceil(math.Max(0, chargeable-halfKgSlab) / halfKgSlab)
	carriage := rt.baseRate + extraSlabs*rt.perHalfKgRate

	breakdown := CostBreakdown{
		ChargeableWeightKg: chargeable,
		CarriageCost:       kernel.RoundMoney(carriage),
	}

	cost := carriage
	if express {
		surcharge := cost*rt.expressMultiplier - cost
		breakdown.ExpressSurcharge = kernel.RoundMoney(surcharge)
		cost += surcharge
	}

	if zone.IsMetro() && rt.metroDiscountPct > 0 {
		discount := cost * rt.metroDiscountPct
		breakdown.MetroDiscount = kernel.RoundMoney(discount)
		cost -= discount
	}

	if paymentMode == kernel.PaymentModeCOD {
		fee := math.Max(rt.minCODFee, cost*rt.codPercentage)
		breakdown.CODFee = kernel.RoundMoney(fee)
		cost += fee
	}

	breakdown.Total = kernel.RoundMoney(cost)
	return breakdown, nil
}

func (rt *RateTable) setBaseRate(baseRate float64) error {
	if baseRate <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("baseRate",
			fmt.Errorf("%v is not greater than 0", baseRate))
	}
	rt.baseRate = baseRate
	return nil
}

func (rt *RateTable) setPerHalfKgRate(rate float64) error {
	if rate < 0 {
		return errs.NewValueIsInvalidErrorWithCause("perHalfKgRate",
			fmt.Errorf("%v is negative", rate))
	}
	rt.perHalfKgRate = rate
	return nil
}

func (rt *RateTable) setExpressMultiplier(multiplier float64) error {
	if multiplier < 1 {
		return errs.NewValueIsInvalidErrorWithCause("expressMultiplier",
			fmt.Errorf("%v is less than 1", multiplier))
	}
	rt.expressMultiplier = multiplier
	return nil
}

func (rt *RateTable) setMetroDiscountPct(pct float64) error {
	if pct < 0 || pct >= 1 {
		return errs.NewValueIsOutOfRangeError("metroDiscountPct", pct, 0, 1)
	}
	rt.metroDiscountPct = pct
	return nil
}

func (rt *RateTable) setCODPercentage(pct float64) error {
	if pct < 0 || pct >= 1 {
		return errs.NewValueIsOutOfRangeError("codPercentage", pct, 0, 1)
	}
	rt.codPercentage = pct
	return nil
}

func (rt *RateTable) setMinCODFee(fee float64) error {
	if fee < 0 {
		return errs.NewValueIsInvalidErrorWithCause("minCODFee",
			fmt.Errorf("%v is negative", fee))
	}
	rt.minCODFee = fee
	return nil
}
