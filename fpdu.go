// SPDX-FileCopyrightText: 2025 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package rle

import "fmt"

// packFPDU concatenates PPDUs into the fixed-size FPDU dst, prefixed by
// the payload label when one is configured, and zero-fills the rest.
// It returns the number of payload bytes written and the padding size.
func packFPDU(dst, label []byte, ppdus [][]byte) (written, padding int, err error) {
	if dst == nil {
		return 0, 0, ErrNilBuffer
	}

	need := len(label)
	for _, p := range ppdus {
		need += len(p)
	}
	if need > len(dst) {
		return 0, 0, fmt.Errorf("%w: %d bytes for %d", errFPDUTooSmall, len(dst), need)
	}

	off := copy(dst, label)
	for _, p := range ppdus {
		off += copy(dst[off:], p)
	}
	for i := off; i < len(dst); i++ {
		dst[i] = 0
	}

	return off, len(dst) - off, nil
}

// forEachPPDU scans an FPDU and hands each PPDU, header included, to
// fn. The scan stops at padding: a zero header word in a PPDU-header
// position. A continuation fragment shorter than 32 bytes also starts
// with a zero byte, so a single zero is not enough; no real PPDU
// marshals to 0x0000 because emitted fragments always carry payload.
// Only header consistency is checked here; semantic validation belongs
// to reassembly.
func forEachPPDU(fpdu []byte, labelSize int, fn func(ppdu []byte) error) error {
	if fpdu == nil {
		return ErrNilBuffer
	}
	if len(fpdu) < labelSize {
		return fmt.Errorf("%w: %d bytes with a %d byte label", errFPDUTooSmall, len(fpdu), labelSize)
	}

	off := labelSize
	for off < len(fpdu) {
		if fpdu[off] == 0 && (off+1 >= len(fpdu) || fpdu[off+1] == 0) { // padding
			break
		}

		size, err := ppduSize(fpdu[off:])
		if err != nil {
			return fmt.Errorf("%w: at offset %d", errPPDUTruncated, off)
		}
		if off+size > len(fpdu) {
			return fmt.Errorf("%w: %d byte ppdu at offset %d", errPPDUTruncated, size, off)
		}

		if err := fn(fpdu[off : off+size]); err != nil {
			return err
		}
		off += size
	}

	return nil
}
