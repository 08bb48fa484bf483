// SPDX-FileCopyrightText: 2025 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package rle

import (
	"errors"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
)

// Transmitter turns SDUs into FPDUs: eight fragmentation contexts, one
// per fragment id, behind a free-context bitmap. The bitmap is the only
// state shared between producers and is driven with atomic test-and-set
// and clear; everything else in a context belongs to the producer that
// took its fragment id, so a Transmitter is not safe for concurrent use
// on the same fragment id.
type Transmitter struct {
	conf Config
	ctxs [numContexts]*txContext

	// busy has a context's bit set exactly while it holds an
	// unfinished ALPDU.
	busy atomic.Uint32

	label []byte

	// stats covers SDUs rejected before a context is taken.
	stats Stats

	log *zap.SugaredLogger
}

// NewTransmitter validates the configuration and builds a transmitter
// with all eight fragment ids free.
func NewTransmitter(conf Config) (*Transmitter, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	trmt := &Transmitter{
		conf:  conf,
		label: make([]byte, conf.ImplicitPayloadLabelSize),
		log:   zap.NewNop().Sugar(),
	}
	for i := range trmt.ctxs {
		trmt.ctxs[i] = newTxContext(uint8(i), conf) // nolint: gosec // G115
	}

	return trmt, nil
}

// SetLogger routes drop and error reports to l.
func (t *Transmitter) SetLogger(l *zap.SugaredLogger) {
	if l != nil {
		t.log = l
	}
}

// SetPayloadLabel sets the label written ahead of the first PPDU of
// every FPDU. Its length must match the configured payload label size.
func (t *Transmitter) SetPayloadLabel(label []byte) error {
	if len(label) != int(t.conf.ImplicitPayloadLabelSize) {
		return fmt.Errorf("%w: %d != %d", errLabelSize, len(label), t.conf.ImplicitPayloadLabelSize)
	}

	t.label = append(t.label[:0], label...)

	return nil
}

// Encapsulate wraps an SDU into an ALPDU on the given fragment id. The
// fragment id stays taken until PackOneFPDU has emitted the final PPDU
// of the ALPDU, or until an error drops it.
func (t *Transmitter) Encapsulate(sdu SDU, fragID uint8) error {
	if t == nil {
		return ErrNilTransmitter
	}
	if fragID > maxFragmentID {
		return fmt.Errorf("%w: %d", ErrInvalidFragmentID, fragID)
	}
	if len(sdu.Payload) > MaxSDUSize {
		t.stats.PacketsDropped++
		t.stats.BytesDropped += uint64(len(sdu.Payload))

		return fmt.Errorf("%w: %d > %d", ErrSDUTooBig, len(sdu.Payload), MaxSDUSize)
	}

	if !t.takeContext(fragID) {
		return fmt.Errorf("%w: fragment id %d", ErrContextBusy, fragID)
	}

	ctx := t.ctxs[fragID]
	if err := ctx.newALPDU(sdu); err != nil {
		t.freeContext(fragID)
		t.stats.PacketsDropped++

		return err
	}

	ctx.stats.PacketsIn++
	ctx.stats.BytesIn += uint64(len(sdu.Payload))

	return nil
}

// Pending reports whether any fragment id holds an unfinished ALPDU.
func (t *Transmitter) Pending() bool {
	return t.busy.Load() != 0
}

// PackOneFPDU drains pending contexts into one FPDU of the given size:
// the payload label, then as many PPDUs as fit, then zero padding. It
// returns the FPDU and the padding size. Contexts whose ALPDU finishes
// are freed; contexts that fail mid-fragmentation are dropped and
// freed.
func (t *Transmitter) PackOneFPDU(fpduSize int) ([]byte, int, error) {
	if t == nil {
		return nil, 0, ErrNilTransmitter
	}
	labelSize := len(t.label)
	if fpduSize <= labelSize {
		return nil, 0, fmt.Errorf("%w: %d bytes with a %d byte label", errFPDUTooSmall, fpduSize, labelSize)
	}
	if !t.Pending() {
		return nil, 0, ErrNoALPDUPending
	}

	room := fpduSize - labelSize
	var ppdus [][]byte

	for id, ctx := range t.ctxs {
		if !ctx.pending {
			continue
		}
		for ctx.pending && room >= minBurstFrag {
			ppdu, done, err := ctx.emitPPDU(room)
			if errors.Is(err, ErrBurstTooSmall) {
				break
			}
			if err != nil {
				ctx.stats.PacketsDropped++
				ctx.stats.BytesDropped += uint64(ctx.buf.remaining())
				ctx.release()
				t.freeContext(uint8(id)) // nolint: gosec // G115
				t.log.Debugw("dropped alpdu", "fragment_id", id, "err", err)

				break
			}

			ppdus = append(ppdus, ppdu)
			room -= len(ppdu)

			if done {
				ctx.stats.PacketsOut++
				ctx.stats.PacketsOK++
				ctx.stats.BytesOut += uint64(ctx.sduLen)
				ctx.stats.BytesOK += uint64(ctx.sduLen)
				ctx.release()
				t.freeContext(uint8(id)) // nolint: gosec // G115
			}
		}
		if room < minBurstFrag {
			break
		}
	}

	if len(ppdus) == 0 {
		if !t.Pending() {
			// Everything pending was dropped while packing.
			return nil, 0, ErrNoALPDUPending
		}

		return nil, 0, fmt.Errorf("%w: no ppdu fits %d bytes", ErrBurstTooSmall, fpduSize)
	}

	fpdu := make([]byte, fpduSize)
	_, padding, err := packFPDU(fpdu, t.label, ppdus)
	if err != nil {
		return nil, 0, err
	}

	return fpdu, padding, nil
}

// Stats sums the counters of all contexts and of rejected input.
func (t *Transmitter) Stats() Stats {
	total := t.stats
	for _, ctx := range t.ctxs {
		total.add(ctx.stats)
	}

	return total
}

// ContextStats returns the counters of one fragment-id context.
func (t *Transmitter) ContextStats(fragID uint8) (Stats, error) {
	if fragID > maxFragmentID {
		return Stats{}, fmt.Errorf("%w: %d", ErrInvalidFragmentID, fragID)
	}

	return t.ctxs[fragID].stats, nil
}

// takeContext test-and-sets the context's busy bit; false means the
// fragment id is already in use.
func (t *Transmitter) takeContext(fragID uint8) bool {
	bit := uint32(1) << fragID
	for {
		old := t.busy.Load()
		if old&bit != 0 {
			return false
		}
		if t.busy.CompareAndSwap(old, old|bit) {
			return true
		}
	}
}

func (t *Transmitter) freeContext(fragID uint8) {
	bit := uint32(1) << fragID
	for {
		old := t.busy.Load()
		if t.busy.CompareAndSwap(old, old&^bit) {
			return
		}
	}
}
