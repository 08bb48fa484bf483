// SPDX-FileCopyrightText: 2025 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package rle

import (
	"encoding/binary"
	"fmt"
)

const (
	ppduCompHeaderSize  = 2
	ppduStartHeaderSize = 4
	ppduFragHeaderSize  = 2

	// maxPPDUPayload is the largest value of the 11-bit PPDU length field.
	maxPPDUPayload = 1<<11 - 1
	// maxALPDULength is the largest value of the 12-bit total-length field.
	maxALPDULength = 1<<12 - 1

	startShift      = 15
	endShift        = 14
	lengthShift     = 3
	lengthMask      = 0x7ff
	labelTypeShift  = 1
	labelTypeMask   = 0x3
	suppressedMask  = 0x1
	fragIDMask      = 0x7
	totalLenShift   = 4
	totalLenMask    = 0xfff
	startLTShift    = 2
	startPTSShift   = 1
	startUseCRCMask = 0x1

	// Minimum bursts that still fit a header plus one payload byte.
	minBurstFrag  = ppduFragHeaderSize + 1
	minBurstStart = ppduStartHeaderSize + 1
)

// PPDU label types. Implicit protocol type marks ordinary traffic;
// signal marks L2S frames, whose protocol type is always suppressed.
const (
	LabelTypeImplicitProtocolType = 0
	LabelTypeSignal               = 3
)

// checkLabelType accepts exactly the two label types RLE defines.
func checkLabelType(lt uint8) error {
	if lt != LabelTypeImplicitProtocolType && lt != LabelTypeSignal {
		return fmt.Errorf("%w: %d", errInvalidLabelType, lt)
	}

	return nil
}

// CompPPDUHeader is the 2-byte header of a Complete PPDU carrying a
// whole ALPDU.
type CompPPDUHeader struct {
	Length          int // ALPDU length in bytes
	LabelType       uint8
	PtypeSuppressed bool
}

// MarshalTo serializes the header and writes to the buffer.
func (h CompPPDUHeader) MarshalTo(buf []byte) (int, error) {
	/*
	 *  0                   1
	 *  0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5
	 * +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
	 * |1|1|   PPDU length (11)  |LT |P|
	 * +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
	 */
	if len(buf) < ppduCompHeaderSize {
		return 0, fmt.Errorf("%w: %d < %d", ErrBurstTooSmall, len(buf), ppduCompHeaderSize)
	}
	if h.Length > maxPPDUPayload {
		return 0, fmt.Errorf("%w: %d > %d", errFieldOverflow, h.Length, maxPPDUPayload)
	}

	word := uint16(1)<<startShift | uint16(1)<<endShift
	word |= uint16(h.Length) << lengthShift // nolint: gosec // G115
	word |= uint16(h.LabelType&labelTypeMask) << labelTypeShift
	if h.PtypeSuppressed {
		word |= suppressedMask
	}
	binary.BigEndian.PutUint16(buf, word)

	return ppduCompHeaderSize, nil
}

// Unmarshal parses the passed byte slice and stores the result in the header.
func (h *CompPPDUHeader) Unmarshal(buf []byte) (int, error) {
	if len(buf) < ppduCompHeaderSize {
		return 0, fmt.Errorf("%w: %d < %d", errShortPPDU, len(buf), ppduCompHeaderSize)
	}

	word := binary.BigEndian.Uint16(buf)
	h.Length = int(word >> lengthShift & lengthMask)
	h.LabelType = uint8(word >> labelTypeShift & labelTypeMask)
	h.PtypeSuppressed = word&suppressedMask != 0

	return ppduCompHeaderSize, nil
}

// StartPPDUHeader is the 4-byte header of the first fragment of a
// fragmented ALPDU.
type StartPPDUHeader struct {
	Length          int // bytes of ALPDU carried by this fragment
	FragmentID      uint8
	TotalLength     int // ALPDU length excluding the trailer
	LabelType       uint8
	PtypeSuppressed bool
	UseCRC          bool
}

// MarshalTo serializes the header and writes to the buffer.
func (h StartPPDUHeader) MarshalTo(buf []byte) (int, error) {
	/*
	 *  0                   1                   2                   3
	 *  0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1
	 * +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
	 * |1|0|   PPDU length (11)  | FID |     total length (12) |LT |P|C|
	 * +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
	 */
	if len(buf) < ppduStartHeaderSize {
		return 0, fmt.Errorf("%w: %d < %d", ErrBurstTooSmall, len(buf), ppduStartHeaderSize)
	}
	if h.Length > maxPPDUPayload {
		return 0, fmt.Errorf("%w: %d > %d", errFieldOverflow, h.Length, maxPPDUPayload)
	}
	if h.TotalLength > maxALPDULength {
		return 0, fmt.Errorf("%w: %d > %d", errFieldOverflow, h.TotalLength, maxALPDULength)
	}

	word := uint16(1) << startShift
	word |= uint16(h.Length) << lengthShift // nolint: gosec // G115
	word |= uint16(h.FragmentID & fragIDMask)
	binary.BigEndian.PutUint16(buf, word)

	word = uint16(h.TotalLength) << totalLenShift // nolint: gosec // G115
	word |= uint16(h.LabelType&labelTypeMask) << startLTShift
	if h.PtypeSuppressed {
		word |= 1 << startPTSShift
	}
	if h.UseCRC {
		word |= startUseCRCMask
	}
	binary.BigEndian.PutUint16(buf[2:], word)

	return ppduStartHeaderSize, nil
}

// Unmarshal parses the passed byte slice and stores the result in the header.
func (h *StartPPDUHeader) Unmarshal(buf []byte) (int, error) {
	if len(buf) < ppduStartHeaderSize {
		return 0, fmt.Errorf("%w: %d < %d", errShortPPDU, len(buf), ppduStartHeaderSize)
	}

	word := binary.BigEndian.Uint16(buf)
	h.Length = int(word >> lengthShift & lengthMask)
	h.FragmentID = uint8(word & fragIDMask)

	word = binary.BigEndian.Uint16(buf[2:])
	h.TotalLength = int(word >> totalLenShift & totalLenMask)
	h.LabelType = uint8(word >> startLTShift & labelTypeMask)
	h.PtypeSuppressed = word>>startPTSShift&1 != 0
	h.UseCRC = word&startUseCRCMask != 0

	return ppduStartHeaderSize, nil
}

// FragPPDUHeader is the 2-byte header shared by Continuation (End
// false) and End (End true) fragments.
type FragPPDUHeader struct {
	End        bool
	Length     int
	FragmentID uint8
}

// MarshalTo serializes the header and writes to the buffer.
func (h FragPPDUHeader) MarshalTo(buf []byte) (int, error) {
	/*
	 *  0                   1
	 *  0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5
	 * +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
	 * |0|E|   PPDU length (11)  | FID |
	 * +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
	 */
	if len(buf) < ppduFragHeaderSize {
		return 0, fmt.Errorf("%w: %d < %d", ErrBurstTooSmall, len(buf), ppduFragHeaderSize)
	}
	if h.Length > maxPPDUPayload {
		return 0, fmt.Errorf("%w: %d > %d", errFieldOverflow, h.Length, maxPPDUPayload)
	}

	var word uint16
	if h.End {
		word |= 1 << endShift
	}
	word |= uint16(h.Length) << lengthShift // nolint: gosec // G115
	word |= uint16(h.FragmentID & fragIDMask)
	binary.BigEndian.PutUint16(buf, word)

	return ppduFragHeaderSize, nil
}

// Unmarshal parses the passed byte slice and stores the result in the header.
func (h *FragPPDUHeader) Unmarshal(buf []byte) (int, error) {
	if len(buf) < ppduFragHeaderSize {
		return 0, fmt.Errorf("%w: %d < %d", errShortPPDU, len(buf), ppduFragHeaderSize)
	}

	word := binary.BigEndian.Uint16(buf)
	h.End = word>>endShift&1 != 0
	h.Length = int(word >> lengthShift & lengthMask)
	h.FragmentID = uint8(word & fragIDMask)

	return ppduFragHeaderSize, nil
}

// ppduStartEnd reads the start and end indicators from the first header
// byte without committing to a header size.
func ppduStartEnd(b byte) (start, end bool) {
	return b&0x80 != 0, b&0x40 != 0
}

// ppduSize returns the full on-wire size, header included, of the PPDU
// beginning at buf[0].
func ppduSize(buf []byte) (int, error) {
	if len(buf) < ppduFragHeaderSize {
		return 0, fmt.Errorf("%w: %d < %d", errShortPPDU, len(buf), ppduFragHeaderSize)
	}

	start, end := ppduStartEnd(buf[0])
	hdrSize := ppduFragHeaderSize
	if start && !end {
		hdrSize = ppduStartHeaderSize
	}

	length := int(binary.BigEndian.Uint16(buf) >> lengthShift & lengthMask)

	return hdrSize + length, nil
}
