/*
Package strata reconciles the depth-bearing records of boreholes.

A borehole carries several lists of depth intervals (lithology, descriptions,
backfill, instrumentation, casings). Those lists are edited independently and
drift: intervals overlap, leave holes, or miss a bound. Strata turns such a list
into a complete column and keeps depth and coordinate fields in sync with the
external services that convert them.

# Columns

A column is the list sorted by start depth, with every adjacent overlap flagged
and every hole filled with a synthesized gap interval, so that the column tiles
the range of the borehole from the surface to its total depth:

	eng, err := strata.New("./boreholes")
	if err != nil {
		log.Fatal(err)
	}

	col, err := eng.Column(ctx, "bh-1", domain.KindLithology)
	if err != nil {
		log.Fatal(err)
	}
	for _, l := range col.Layers {
		fmt.Println(l.ID, *l.FromDepth, *l.ToDepth, l.IsGap)
	}

The pure building blocks live in package column and can be used without an Engine.

# Conversions

Depths are expressed either as measured depth along the borehole (MD) or as
meters above sea level (MASL); coordinates either in LV95 or LV03. The
converters of package convert keep both representations of a value in sync
through a GeometryService and a CoordinateTransformer. Responses that arrive
after a newer edit are discarded.

	eng, err := strata.New("./boreholes",
		strata.WithGeometry(httpAdapter.NewGeometryClient("https://api.example.org")),
		strata.WithCache(memory.NewDepthCache()),
	)

	v, err := eng.ConvertDepth(ctx, "bh-1", domain.MeasuredDepth, "12.50")
	// v.String() == "487.50", v.Reference == domain.MetersAboveSeaLevel

# Adapters

Borehole data is read through ports.BoreholeSource (a Loam dataset of markdown,
JSON or YAML documents by default, or an in-memory source). Depth conversions
can be cached in memory, in JSON files or in Redis.
*/
package strata
