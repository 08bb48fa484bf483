// SPDX-FileCopyrightText: 2025 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package rle

import (
	"fmt"

	"go.uber.org/zap"
)

// Receiver unpacks FPDUs back into SDUs: eight reassembly contexts
// selected by the PPDU fragment id, plus context-free handling of
// complete PPDUs. A Receiver is single-threaded; hosts wanting parallel
// reception instantiate one per worker.
type Receiver struct {
	conf Config
	ctxs [numContexts]*rxContext

	// stats covers traffic that never touches a fragment context:
	// complete PPDUs and malformed input.
	stats Stats

	log *zap.SugaredLogger
}

// NewReceiver validates the configuration and builds a receiver with
// all eight contexts free.
func NewReceiver(conf Config) (*Receiver, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	rcvr := &Receiver{conf: conf, log: zap.NewNop().Sugar()}
	for i := range rcvr.ctxs {
		rcvr.ctxs[i] = newRxContext(uint8(i), conf) // nolint: gosec // G115
	}

	return rcvr, nil
}

// SetLogger routes drop and protocol-violation reports to l.
func (r *Receiver) SetLogger(l *zap.SugaredLogger) {
	if l != nil {
		r.log = l
	}
}

// Decapsulate scans one FPDU and returns every SDU it completes.
// Protocol violations inside individual PPDUs are counted and logged
// but do not abort the scan; only structural FPDU errors do.
func (r *Receiver) Decapsulate(fpdu []byte) ([]SDU, error) {
	if r == nil {
		return nil, ErrNilReceiver
	}

	var out []SDU
	err := forEachPPDU(fpdu, int(r.conf.ImplicitPayloadLabelSize), func(ppdu []byte) error {
		if sdu, ok := r.processPPDU(ppdu); ok {
			out = append(out, sdu)
		}

		return nil
	})
	if err != nil {
		return out, err
	}

	return out, nil
}

func (r *Receiver) processPPDU(ppdu []byte) (SDU, bool) {
	start, end := ppduStartEnd(ppdu[0])

	switch {
	case start && end:
		return r.processComp(ppdu)
	case start:
		return SDU{}, r.processStart(ppdu)
	default:
		return r.processFrag(ppdu, end)
	}
}

// processComp handles a complete PPDU. It touches no fragment context
// and its ALPDU carries no trailer.
func (r *Receiver) processComp(ppdu []byte) (SDU, bool) {
	var hdr CompPPDUHeader
	n, err := hdr.Unmarshal(ppdu)
	if err != nil {
		r.dropComp(len(ppdu), err)

		return SDU{}, false
	}
	alpdu := ppdu[n:]

	r.stats.PacketsIn++
	r.stats.BytesIn += uint64(len(alpdu))

	if err := checkLabelType(hdr.LabelType); err != nil {
		r.dropComp(len(alpdu), err)

		return SDU{}, false
	}

	code, explicit, n, err := parseALPDUHeader(r.conf, hdr.LabelType, hdr.PtypeSuppressed, alpdu)
	if err != nil {
		r.dropComp(len(alpdu), err)

		return SDU{}, false
	}

	payload := append([]byte{}, alpdu[n:]...)
	sdu, err := resolveSDU(code, explicit, payload)
	if err != nil {
		r.dropComp(len(alpdu), err)

		return SDU{}, false
	}

	r.stats.PacketsOut++
	r.stats.PacketsOK++
	r.stats.BytesOut += uint64(len(sdu.Payload))
	r.stats.BytesOK += uint64(len(sdu.Payload))

	return sdu, true
}

func (r *Receiver) dropComp(bytes int, err error) {
	r.stats.PacketsDropped++
	r.stats.BytesDropped += uint64(bytes) // nolint: gosec // G115
	r.log.Debugw("dropped complete ppdu", "err", err)
}

func (r *Receiver) processStart(ppdu []byte) bool {
	var hdr StartPPDUHeader
	n, err := hdr.Unmarshal(ppdu)
	if err != nil {
		r.stats.PacketsDropped++
		r.log.Debugw("dropped start ppdu", "err", err)

		return false
	}

	ctx := r.ctxs[hdr.FragmentID]
	if err := ctx.onStart(hdr, ppdu[n:]); err != nil {
		r.log.Debugw("dropped start ppdu", "fragment_id", hdr.FragmentID, "err", err)
	}

	return false
}

func (r *Receiver) processFrag(ppdu []byte, end bool) (SDU, bool) {
	var hdr FragPPDUHeader
	n, err := hdr.Unmarshal(ppdu)
	if err != nil {
		r.stats.PacketsDropped++
		r.log.Debugw("dropped ppdu fragment", "err", err)

		return SDU{}, false
	}

	ctx := r.ctxs[hdr.FragmentID]
	if !end {
		if err := ctx.onCont(ppdu[n:]); err != nil {
			r.log.Debugw("dropped cont ppdu", "fragment_id", hdr.FragmentID, "err", err)
		}

		return SDU{}, false
	}

	sdu, lost, err := ctx.onEnd(ppdu[n:])
	if err != nil {
		r.log.Debugw("dropped alpdu", "fragment_id", hdr.FragmentID, "err", err)

		return SDU{}, false
	}
	if lost > 0 {
		r.log.Warnw("sequence gap", "fragment_id", hdr.FragmentID, "lost", lost)
	}

	return sdu, true
}

// Stats sums the counters of all contexts and of context-free traffic.
func (r *Receiver) Stats() Stats {
	total := r.stats
	for _, ctx := range r.ctxs {
		total.add(ctx.stats)
	}

	return total
}

// ContextStats returns the counters of one fragment-id context.
func (r *Receiver) ContextStats(fragID uint8) (Stats, error) {
	if fragID > maxFragmentID {
		return Stats{}, fmt.Errorf("%w: %d", ErrInvalidFragmentID, fragID)
	}

	return r.ctxs[fragID].stats, nil
}
