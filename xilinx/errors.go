// Copyright © 2019 Erin Shepherd
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package xilinx

import "errors"

// Sentinel errors returned by this package. Callers should use errors.Is,
// since most call sites wrap these with fmt.Errorf for positional context.
var (
	// ErrIO wraps an underlying I/O failure (short read/write, seek error).
	ErrIO = errors.New("bitstream i/o failure")

	// ErrSyncNotFound is returned when no SYNC word could be located in
	// the input.
	ErrSyncNotFound = errors.New("sync word not found")

	// ErrUnhandledPacket is returned for a header word that is neither a
	// Type-1, a Type-2 nor a SYNC word, for a Type-2 header with no
	// preceding zero-count Type-1 header, and for a zero-count Type-1
	// header that is not immediately followed by a Type-2 header.
	ErrUnhandledPacket = errors.New("unhandled configuration packet")

	// ErrPayloadOverflow is returned when a packet's declared word count
	// runs past the end of the available data.
	ErrPayloadOverflow = errors.New("packet payload runs past end of stream")

	// ErrMalformedCrcPacket is returned by StripCRCChecks when a CRC
	// check packet does not have the expected single-word form.
	ErrMalformedCrcPacket = errors.New("malformed crc check packet")

	// ErrIdcodeMismatch is returned when one SLR's configuration stream
	// writes two different IDCODEs, and by Bitstream.DeviceForSLR for an
	// SLR that carries no IDCODE to resolve a device from.
	ErrIdcodeMismatch = errors.New("idcode mismatch")

	// ErrUnsupportedBitstream is returned for bitstream shapes this
	// package does not model (e.g. multiple FDRI writes in a single SLR,
	// FDRI/MFWR writes the current write mode does not permit, an FDRO
	// read when readback was not requested, mixed FDRI/FDRO streams, no
	// SLR carrying frame data).
	ErrUnsupportedBitstream = errors.New("unsupported bitstream")

	// ErrOutOfBounds is returned by frame/bit accessors given an
	// out-of-range offset.
	ErrOutOfBounds = errors.New("bit offset out of bounds")

	// ErrUnknownDevice is returned when no device catalog entry matches
	// a requested IDCODE or part name, and by Device.BRAMByLoc when the
	// device has no tile of the requested category at (x, y).
	ErrUnknownDevice = errors.New("unknown device")

	// ErrUnmappedAddress is returned by the address-space mapper when no
	// configured memory region covers a requested processor address.
	ErrUnmappedAddress = errors.New("address not covered by any configured memory region")

	// ErrUnsupportedParity is returned by the address-space mapper for
	// any memory lane that carries parity bits; parity bit mapping is
	// intentionally left unimplemented (see DESIGN.md).
	ErrUnsupportedParity = errors.New("parity-bit memory lanes are not supported")
)
