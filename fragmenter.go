// SPDX-FileCopyrightText: 2025 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package rle

import "fmt"

// txContext is one of the transmitter's eight fragmentation contexts.
// It owns the fragmentation buffer for its fragment id and the per-id
// sequence number. A context is single-writer: only the producer that
// took the fragment id drives it until the ALPDU is fully emitted.
type txContext struct {
	id   uint8
	conf Config
	buf  *fragBuf
	seq  sequencer

	pending    bool
	fragmented bool
	useCRC     bool
	labelType  uint8
	suppressed bool
	totalLen   int
	sduLen     int
	fragCount  uint16

	stats Stats
}

func newTxContext(id uint8, conf Config) *txContext {
	return &txContext{id: id, conf: conf, buf: newFragBuf()}
}

// newALPDU loads an SDU into the context. The caller must already hold
// the fragment id via the transmitter's free bitmap.
func (c *txContext) newALPDU(sdu SDU) error {
	plan, err := encapsulate(c.conf, sdu, c.buf)
	if err != nil {
		return err
	}

	c.pending = true
	c.fragmented = false
	c.useCRC = false
	c.labelType = plan.labelType
	c.suppressed = plan.ptypeSuppressed
	c.totalLen = 0
	c.sduLen = len(sdu.Payload)
	c.fragCount = 0

	return nil
}

// release abandons the ALPDU in flight, on success or error alike.
func (c *txContext) release() {
	c.pending = false
	c.fragmented = false
}

// emitPPDU produces exactly one PPDU of at most burstSize bytes from
// the pending ALPDU and advances the cursor. done reports that the
// ALPDU has been fully emitted and the fragment id can be freed.
//
// A complete ALPDU that fits the burst goes out as a single COMP PPDU
// with no trailer. Otherwise the trailer is appended on the first call
// (consuming a sequence number in sequence-number mode) and the ALPDU
// leaves as START, zero or more CONT, then END. The END fragment always
// carries the last trailer byte; a 4-byte CRC trailer may be split
// between the last CONT and the END.
func (c *txContext) emitPPDU(burstSize int) (ppdu []byte, done bool, err error) {
	if !c.pending {
		return nil, false, ErrNoALPDUPending
	}

	if c.fragmented {
		ppdu, done, err = c.emitNext(burstSize)
	} else {
		ppdu, done, err = c.emitFirst(burstSize)
	}
	if done {
		// Nothing is left to emit until the next ALPDU is loaded.
		c.pending = false
	}

	return ppdu, done, err
}

func (c *txContext) emitFirst(burstSize int) (ppdu []byte, done bool, err error) {
	alpduLen := c.buf.alpduLen()

	if alpduLen+ppduCompHeaderSize <= burstSize && alpduLen <= maxPPDUPayload {
		hdr := CompPPDUHeader{
			Length:          alpduLen,
			LabelType:       c.labelType,
			PtypeSuppressed: c.suppressed,
		}
		out := make([]byte, ppduCompHeaderSize+alpduLen)
		if _, err = hdr.MarshalTo(out); err != nil {
			return nil, false, err
		}
		copy(out[ppduCompHeaderSize:], c.buf.emit(alpduLen))
		c.fragCount++

		return out, true, nil
	}

	if burstSize < minBurstStart {
		return nil, false, fmt.Errorf("%w: %d < %d for a start ppdu", ErrBurstTooSmall, burstSize, minBurstStart)
	}

	c.totalLen = alpduLen
	c.appendTrailer()
	c.fragmented = true

	fragLen := burstSize - ppduStartHeaderSize
	if rem := c.buf.remaining(); fragLen > rem-1 {
		// Leave at least one byte so the END fragment is never empty.
		fragLen = rem - 1
	}
	if fragLen > maxPPDUPayload {
		fragLen = maxPPDUPayload
	}

	hdr := StartPPDUHeader{
		Length:          fragLen,
		FragmentID:      c.id,
		TotalLength:     c.totalLen,
		LabelType:       c.labelType,
		PtypeSuppressed: c.suppressed,
		UseCRC:          c.useCRC,
	}
	out := make([]byte, ppduStartHeaderSize+fragLen)
	if _, err = hdr.MarshalTo(out); err != nil {
		return nil, false, err
	}
	copy(out[ppduStartHeaderSize:], c.buf.emit(fragLen))
	c.fragCount++

	return out, false, nil
}

func (c *txContext) emitNext(burstSize int) (ppdu []byte, done bool, err error) {
	if burstSize < minBurstFrag {
		return nil, false, fmt.Errorf("%w: %d < %d for a cont/end ppdu", ErrBurstTooSmall, burstSize, minBurstFrag)
	}
	if c.fragCount >= c.conf.maxFragments() {
		return nil, false, fmt.Errorf("%w: %d", ErrTooManyFragments, c.fragCount)
	}

	rem := c.buf.remaining()
	hdr := FragPPDUHeader{FragmentID: c.id}

	fragLen := rem
	if rem <= burstSize-ppduFragHeaderSize && rem <= maxPPDUPayload {
		hdr.End = true
		done = true
	} else {
		fragLen = burstSize - ppduFragHeaderSize
		if fragLen > maxPPDUPayload {
			fragLen = maxPPDUPayload
		}
	}
	hdr.Length = fragLen

	out := make([]byte, ppduFragHeaderSize+fragLen)
	if _, err = hdr.MarshalTo(out); err != nil {
		return nil, false, err
	}
	copy(out[ppduFragHeaderSize:], c.buf.emit(fragLen))
	c.fragCount++

	return out, done, nil
}

// appendTrailer closes the ALPDU for fragmentation: CRC-32 over header
// plus SDU when the configuration allows it, the context's next 3-bit
// sequence number otherwise.
func (c *txContext) appendTrailer() {
	if c.conf.AllowALPDUCRC {
		c.useCRC = true
		c.buf.appendTrailer(appendUint32LE(nil, alpduCRC(c.buf.alpdu())))

		return
	}

	c.buf.appendTrailer([]byte{c.seq.next() & seqNumMask})
}
