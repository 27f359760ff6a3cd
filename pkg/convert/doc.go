/*
Package convert reconciles values between reference systems on user edit.

DepthConverter keeps a measured-depth field and an elevation field of one
borehole in sync through a GeometryService. CoordinateReconciler keeps the LV95
and LV03 coordinate fields in sync through a CoordinateTransformer.

Both are safe for concurrent use. Every field carries a generation counter that
is bumped on each write; a conversion captures the generations of the fields it
reads and writes when it starts and only applies its result if none of them
moved while the external call was in flight. Superseded calls are not
cancelled: they run to completion and their result is dropped.
*/
package convert
