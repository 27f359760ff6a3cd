/*
Package ports defines the driven ports (interfaces) of the Strata engine.

These interfaces decouple the reconciliation core from the external services
and data sources it depends on, so the same engine runs against HTTP services,
in-memory fakes or a local simulator.

# Key Interfaces

  - GeometryService: converts a depth between measured depth and meters above sea level for one borehole.
  - CoordinateTransformer: converts planar coordinates between LV95 and LV03.
  - DepthCache: memoises GeometryService results (memory or Redis).
  - BoreholeSource: reads the depth-bearing records of boreholes (memory or Loam documents).
  - Recorder: receives conversion and column metrics.
*/
package ports
