// SPDX-FileCopyrightText: 2025 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package rle

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransmitterCollector(t *testing.T) {
	trmt, err := NewTransmitter(validConfig())
	require.NoError(t, err)

	coll := NewTransmitterCollector(trmt)
	// 8 counters for each of the 8 fragment ids.
	assert.Equal(t, 64, testutil.CollectAndCount(coll))

	require.NoError(t, trmt.Encapsulate(SDU{
		ProtocolType: ProtocolTypeIPv4,
		Payload:      make([]byte, 10),
	}, 3))

	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(coll))

	families, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, mf := range families {
		if mf.GetName() != "rle_transmitter_packets_in_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			if m.GetLabel()[0].GetValue() == "3" {
				found = true
				assert.Equal(t, float64(1), m.GetCounter().GetValue())
			}
		}
	}
	assert.True(t, found)
}

func TestReceiverCollector(t *testing.T) {
	rcvr, err := NewReceiver(validConfig())
	require.NoError(t, err)

	coll := NewReceiverCollector(rcvr)
	assert.Equal(t, 64, testutil.CollectAndCount(coll))
}
