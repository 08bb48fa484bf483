// SPDX-FileCopyrightText: 2025 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package rle

import "errors"

var (
	// ErrNilTransmitter is returned when a method is invoked on a nil Transmitter.
	ErrNilTransmitter = errors.New("nil transmitter")
	// ErrNilReceiver is returned when a method is invoked on a nil Receiver.
	ErrNilReceiver = errors.New("nil receiver")
	// ErrNilBuffer is returned when a nil byte slice is passed where wire data is required.
	ErrNilBuffer = errors.New("nil buffer")
	// ErrInvalidConfig is returned when a configuration violates the rules of Config.Validate.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrSDUTooBig is returned when an SDU payload exceeds MaxSDUSize.
	ErrSDUTooBig = errors.New("sdu too big")
	// ErrInvalidFragmentID is returned for fragment ids outside 0..7.
	ErrInvalidFragmentID = errors.New("invalid fragment id")
	// ErrContextBusy is returned when the requested fragment id already
	// holds an ALPDU that has not been fully emitted.
	ErrContextBusy = errors.New("fragmentation context busy")
	// ErrBurstTooSmall is returned when the requested burst cannot carry
	// even a minimal PPDU fragment.
	ErrBurstTooSmall = errors.New("burst too small")
	// ErrNoALPDUPending is returned when PPDU emission is requested from
	// a context with no ALPDU in flight.
	ErrNoALPDUPending = errors.New("no alpdu pending")
	// ErrTooManyFragments is returned when an ALPDU cannot be emitted
	// within the configured fragment cap.
	ErrTooManyFragments = errors.New("too many fragments")
	// ErrBufferNotInitialised is returned when a fragmentation buffer is
	// used before being initialised.
	ErrBufferNotInitialised = errors.New("fragmentation buffer not initialised")
	// ErrNonDeterministicHeaderSize is returned by HeaderSize for
	// traffic FPDUs, whose overhead depends on the runtime protocol type.
	ErrNonDeterministicHeaderSize = errors.New("header size is non deterministic")

	errPPDUTruncated     = errors.New("truncated ppdu")
	errShortPPDU         = errors.New("ppdu too short for its header")
	errFieldOverflow     = errors.New("value exceeds header field")
	errInvalidTransition = errors.New("invalid reassembly transition")
	errLengthOverflow    = errors.New("fragment exceeds declared alpdu length")
	errLengthMismatch    = errors.New("alpdu shorter than declared length")
	errCRCMismatch       = errors.New("alpdu crc mismatch")
	errUnknownPtypeCode  = errors.New("unknown compressed protocol type")
	errMalformedVLAN     = errors.New("malformed vlan frame")
	errInvalidIPVersion  = errors.New("invalid ip version")
	errLabelSize         = errors.New("payload label size mismatch")
	errFPDUTooSmall      = errors.New("fpdu too small")
	errInvalidLabelType  = errors.New("invalid label type")
)
