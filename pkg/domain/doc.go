/*
Package domain contains the core domain models for the Strata reconciliation engine.

It defines the depth-anchored entities of a borehole column (Intervals, Layer
depths, Envelopes) and the reference systems used by the vertical and planar
conversions. This package is kept pure and free of I/O or persistence,
following Hexagonal Architecture principles.

# Key Entities

  - Interval: A depth-bounded record (lithology layer, description, casing element). Gaps are synthetic Intervals.
  - LayerDepth: The overlap diagnostics computed for one normalized Interval.
  - Envelope: The min/max depth implied by a set of child elements.
  - DepthValue: A scalar tagged with its vertical reference (MD or MASL).
  - ReferenceSystem: A planar Swiss reference frame (LV95, LV03) with its valid bounding box.
*/
package domain
