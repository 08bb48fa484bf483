// SPDX-FileCopyrightText: 2025 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package rle

import "hash/crc32"

// alpduCRC computes the CRC-32 carried by the 4-byte ALPDU trailer.
// It covers the ALPDU header and the SDU, and is stored little-endian
// on the wire.
func alpduCRC(alpdu []byte) uint32 {
	return crc32.ChecksumIEEE(alpdu)
}
