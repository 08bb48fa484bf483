// SPDX-FileCopyrightText: 2025 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package rle

import (
	"sync/atomic"
)

// sequencer generates the 3-bit sequence numbers carried by the ALPDU
// trailer of fragmented ALPDUs. One instance lives in each transmitter
// context; a sequence number is consumed only when an ALPDU is actually
// fragmented, never for complete PPDUs.
type sequencer struct {
	// state counts issued sequence numbers; the lower 3 bits are the
	// on-wire value.
	state atomic.Uint64
}

// next returns the sequence number for the current ALPDU and advances
// modulo 8.
func (s *sequencer) next() uint8 {
	return uint8(s.state.Add(1)-1) & seqNumMask
}

// issued returns the total number of sequence numbers handed out.
func (s *sequencer) issued() uint64 {
	return s.state.Load()
}
