// SPDX-FileCopyrightText: 2025 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package rle

// Stats are the per-context counters kept by both ends of a link. On
// the transmitter, In counts SDUs accepted by Encapsulate and Out/OK
// count SDUs whose last PPDU left in an FPDU. On the receiver, In
// counts SDUs announced by a COMP or START PPDU, Out/OK count
// deliveries, Lost counts sequence-number gaps and abandoned contexts.
type Stats struct {
	PacketsIn      uint64
	PacketsOut     uint64
	PacketsOK      uint64
	PacketsDropped uint64
	PacketsLost    uint64

	BytesIn      uint64
	BytesOut     uint64
	BytesOK      uint64
	BytesDropped uint64
}

// add accumulates o into s.
func (s *Stats) add(o Stats) {
	s.PacketsIn += o.PacketsIn
	s.PacketsOut += o.PacketsOut
	s.PacketsOK += o.PacketsOK
	s.PacketsDropped += o.PacketsDropped
	s.PacketsLost += o.PacketsLost
	s.BytesIn += o.BytesIn
	s.BytesOut += o.BytesOut
	s.BytesOK += o.BytesOK
	s.BytesDropped += o.BytesDropped
}
