// This file is part of Statecodec.
//
// Statecodec is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Statecodec is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Statecodec.  If not, see <https://www.gnu.org/licenses/>.

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package. It takes a formatting pattern,
// placeholder values and returns an error.
//
// The pattern is what identifies a curated error. Packages that want callers
// to be able to test for a specific failure store the pattern as an exported
// const string and the caller tests with Is() or Has(). For example, the codec
// package declares:
//
//	const FrameOverflow = "codec: frame overflow (frame size is %d bytes)"
//
// and a caller can then write:
//
//	if curated.Is(err, codec.FrameOverflow) {
//		...
//	}
//
// Is() only checks the outermost error. Has() checks the pattern of the error
// and the patterns of any curated errors used as placeholder values, ie. the
// entire chain.
//
//	e := curated.Errorf(codec.FrameOverflow, 16)
//	f := curated.Errorf("rewind: %v", e)
//
//	curated.Is(f, codec.FrameOverflow)  // false
//	curated.Has(f, codec.FrameOverflow) // true
//
// The Error() function implementation for curated errors ensures that the
// error chain is normalised. Specifically, that the chain does not contain
// duplicate adjacent parts. This means that wrapping an error with a prefix
// that it already has does not result in a stutter:
//
//	e := curated.Errorf("snapshot: file not found")
//	f := curated.Errorf("snapshot: %v", e)
//
//	fmt.Println(f) // "snapshot: file not found"
//
// Curated errors also implement Unwrap() so that the errors.Is() and
// errors.As() functions from the standard library can see through them to any
// error used as a placeholder value.
package curated
