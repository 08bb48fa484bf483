// SPDX-FileCopyrightText: 2025 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package rle

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// statsSource is either side of a link, viewed by its counters.
type statsSource interface {
	ContextStats(fragID uint8) (Stats, error)
}

// collector exposes the per-context counters of one side of an RLE
// link as prometheus const metrics, labelled by fragment id.
type collector struct {
	source statsSource

	packetsIn      *prometheus.Desc
	packetsOut     *prometheus.Desc
	packetsOK      *prometheus.Desc
	packetsDropped *prometheus.Desc
	packetsLost    *prometheus.Desc
	bytesIn        *prometheus.Desc
	bytesOut       *prometheus.Desc
	bytesDropped   *prometheus.Desc
}

// NewTransmitterCollector builds a prometheus collector over a
// transmitter's fragment-id contexts.
func NewTransmitterCollector(trmt *Transmitter) prometheus.Collector {
	return newCollector("transmitter", trmt)
}

// NewReceiverCollector builds a prometheus collector over a receiver's
// fragment-id contexts.
func NewReceiverCollector(rcvr *Receiver) prometheus.Collector {
	return newCollector("receiver", rcvr)
}

func newCollector(side string, source statsSource) *collector {
	labels := []string{"fragment_id"}
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc("rle_"+side+"_"+name, help, labels, nil)
	}

	return &collector{
		source:         source,
		packetsIn:      desc("packets_in_total", "SDUs entering the context."),
		packetsOut:     desc("packets_out_total", "SDUs leaving the context."),
		packetsOK:      desc("packets_ok_total", "SDUs fully processed."),
		packetsDropped: desc("packets_dropped_total", "SDUs dropped on error."),
		packetsLost:    desc("packets_lost_total", "SDUs lost on the link."),
		bytesIn:        desc("bytes_in_total", "Payload bytes entering the context."),
		bytesOut:       desc("bytes_out_total", "Payload bytes leaving the context."),
		bytesDropped:   desc("bytes_dropped_total", "Payload bytes dropped on error."),
	}
}

func (c *collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.packetsIn
	ch <- c.packetsOut
	ch <- c.packetsOK
	ch <- c.packetsDropped
	ch <- c.packetsLost
	ch <- c.bytesIn
	ch <- c.bytesOut
	ch <- c.bytesDropped
}

func (c *collector) Collect(ch chan<- prometheus.Metric) {
	for id := uint8(0); id <= maxFragmentID; id++ {
		stats, err := c.source.ContextStats(id)
		if err != nil {
			continue
		}

		label := strconv.Itoa(int(id))
		counter := func(desc *prometheus.Desc, v uint64) {
			ch <- prometheus.MustNewConstMetric(desc, prometheus.CounterValue, float64(v), label)
		}

		counter(c.packetsIn, stats.PacketsIn)
		counter(c.packetsOut, stats.PacketsOut)
		counter(c.packetsOK, stats.PacketsOK)
		counter(c.packetsDropped, stats.PacketsDropped)
		counter(c.packetsLost, stats.PacketsLost)
		counter(c.bytesIn, stats.BytesIn)
		counter(c.bytesOut, stats.BytesOut)
		counter(c.bytesDropped, stats.BytesDropped)
	}
}
