// Package session holds one loaded signal and runs the equalization
// pipeline over it: forward FFT, per-bin gain from a band set, inverse
// FFT, peak limiting. The input signal is immutable for the life of the
// session; every Equalize call starts from the original input, so
// repeated processing never accumulates gain. Sessions are not safe for
// concurrent use.
package session
