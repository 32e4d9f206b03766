// Package curve synthesizes per-frequency gain curves from band sets.
//
// Each band contributes a raised-cosine-tapered gain region: full gain at
// the band center, unity at the band edges, with a continuous
// zero-derivative transition in between. Overlapping bands compose
// multiplicatively, so two overlapping 1.5x boosts yield 2.25x where they
// coincide. Synthesis is a pure function of the band set and the
// frequency axis; output bins are independent of each other.
package curve
