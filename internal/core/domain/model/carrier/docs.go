// Package carrier provides domain entities for shipping carriers in the
// routing core. It implements the CarrierProfile aggregate with its static
// rate table and service levels, and the derived Performance metrics value
// object.
//
// The package includes:
//   - CarrierProfile: identity, rate table, and per-zone service levels
//   - RateTable: the deterministic cost estimator (chargeable weight,
//     half-kg slabs, express multiplier, metro discount, COD fee)
//   - Performance: per-(carrier, zone) historical metrics with documented
//     fallback priors when history is sparse
//
// Key business rules:
//   - Rate tables and service levels are static configuration, never fetched
//     live from a third party
//   - Performance metrics are derived on demand and never stored as the
//     source of truth
//   - Cost estimation rounds half-up, always through kernel.RoundMoney
package carrier
