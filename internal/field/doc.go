// Package field simulates the constellation particle field.
//
// A [Field] owns a fixed set of particles moving inside the surface
// rectangle with elastic reflection at the edges. Each frame the host
// calls [Field.Step] with the current surface dimensions and then
// [Field.Draw], which paints every particle as a disc and joins every
// pair closer than the connection threshold with a faint line.
//
// # Proximity
//
// Connected pairs are found by a [Finder]. [Pairwise] is the O(n²) scan
// used at the default particle count; [Grid] buckets particles into
// threshold-sized cells for larger fields. Both report the same pairs in
// the same order.
//
// # Randomness
//
// Fields draw from an injected *rand.Rand. Passing nil gives a freshly
// seeded generator per field; tests pass [NewRand] with a fixed seed.
package field
