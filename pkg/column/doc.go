/*
Package column reconciles depth intervals into a continuous borehole column.

The package is a set of pure functions; every result is recomputed from the
input on each call and nothing is cached.

  - ExtractEnvelope reduces child elements with optional bounds to a {min, max} envelope.
  - Normalize sorts intervals by start depth and flags adjacent overlaps.
  - SynthesizeGaps inserts gap pseudo-intervals so the column covers its range.
  - Complete chains Normalize and SynthesizeGaps.

Call sites differ only in their Options: the reference range, the tie-break for
equal start depths and the policy gaps use to inherit rendering hints.
*/
package column
