// SPDX-FileCopyrightText: 2025 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package rle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// TestRoundTripProperty drives the whole pipeline: any payload up to
// MaxSDUSize, any trailer/protocol-type mode and any FPDU size large
// enough for a START PPDU must come back byte-equal, with the fragment
// id released at the end.
func TestRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		conf := Config{
			AllowProtocolTypeOmission: rapid.Bool().Draw(t, "omit"),
			UseCompressedProtocolType: rapid.Bool().Draw(t, "compress"),
			AllowALPDUCRC:             rapid.Bool().Draw(t, "crc"),
			ImplicitProtocolType:      CompressedIPv4,
			// Small FPDUs against big SDUs need far more fragments
			// than the default cap.
			MaxFragments: 2048,
		}
		conf.AllowALPDUSequenceNumber = !conf.AllowALPDUCRC

		ptype := rapid.SampledFrom([]uint16{
			ProtocolTypeIPv4, ProtocolTypeIPv6, ProtocolTypeARP, ProtocolTypeL2S, 0x1234,
		}).Draw(t, "ptype")
		payload := rapid.SliceOfN(rapid.Byte(), 0, MaxSDUSize).Draw(t, "payload")
		fpduSize := rapid.IntRange(minBurstStart, 1024).Draw(t, "fpduSize")
		fragID := uint8(rapid.IntRange(0, maxFragmentID).Draw(t, "fragID")) // nolint: gosec // G115

		trmt, err := NewTransmitter(conf)
		require.NoError(t, err)
		rcvr, err := NewReceiver(conf)
		require.NoError(t, err)

		want := SDU{ProtocolType: ptype, Payload: payload}
		require.NoError(t, trmt.Encapsulate(want, fragID))

		var got []SDU
		for trmt.Pending() {
			fpdu, _, err := trmt.PackOneFPDU(fpduSize)
			require.NoError(t, err)

			sdus, err := rcvr.Decapsulate(fpdu)
			require.NoError(t, err)
			got = append(got, sdus...)
		}

		require.Len(t, got, 1)
		assert.Equal(t, want.ProtocolType, got[0].ProtocolType)
		assert.Equal(t, want.Payload, got[0].Payload)
	})
}

// TestRoundTripBurstSchedule feeds an ALPDU through randomized burst
// sizes, emitting PPDUs one by one instead of through PackOneFPDU.
func TestRoundTripBurstSchedule(t *testing.T) {
	conf := validConfig()
	conf.UseCompressedProtocolType = true
	conf.MaxFragments = 8192

	for i := 0; i < 50; i++ {
		size := 1 + globalMathRandomGenerator.Intn(MaxSDUSize)
		payload := make([]byte, size)
		for j := range payload {
			payload[j] = byte(globalMathRandomGenerator.Intn(256))
		}
		want := SDU{ProtocolType: ProtocolTypeIPv6, Payload: payload}

		ctx := newTxContext(0, conf)
		require.NoError(t, ctx.newALPDU(want))

		rcvr, err := NewReceiver(conf)
		require.NoError(t, err)

		var got []SDU
		var bursts int
		for ctx.pending {
			burst := minBurstStart + globalMathRandomGenerator.Intn(512)
			ppdu, done, err := ctx.emitPPDU(burst)
			require.NoError(t, err)

			fpdu := make([]byte, len(ppdu)+1) // one padding byte
			_, _, err = packFPDU(fpdu, nil, [][]byte{ppdu})
			require.NoError(t, err)

			sdus, err := rcvr.Decapsulate(fpdu)
			require.NoError(t, err)
			got = append(got, sdus...)

			bursts++
			require.Less(t, bursts, 4096, "fragmentation must terminate")
			if done {
				ctx.release()
			}
		}

		require.Len(t, got, 1)
		assert.Equal(t, want.ProtocolType, got[0].ProtocolType)
		assert.Equal(t, want.Payload, got[0].Payload)
	}
}

// TestHeaderLengthIsConfigFunction checks that the ALPDU header length
// depends only on the configuration and the SDU protocol type.
func TestHeaderLengthIsConfigFunction(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		conf := Config{
			AllowProtocolTypeOmission: rapid.Bool().Draw(t, "omit"),
			UseCompressedProtocolType: rapid.Bool().Draw(t, "compress"),
			AllowALPDUSequenceNumber:  true,
			ImplicitProtocolType:      CompressedIPv4,
		}
		ptype := rapid.SampledFrom([]uint16{
			ProtocolTypeIPv4, ProtocolTypeIPv6, ProtocolTypeARP, 0x1234,
		}).Draw(t, "ptype")

		plan1 := planALPDU(conf, SDU{ProtocolType: ptype, Payload: make([]byte, 8)})
		plan2 := planALPDU(conf, SDU{ProtocolType: ptype, Payload: make([]byte, 1500)})
		assert.Equal(t, len(plan1.header), len(plan2.header))

		switch {
		case plan1.ptypeSuppressed:
			assert.Empty(t, plan1.header)
		case conf.UseCompressedProtocolType && ptype == 0x1234:
			assert.Len(t, plan1.header, 3)
		case conf.UseCompressedProtocolType:
			assert.Len(t, plan1.header, 1)
		default:
			assert.Len(t, plan1.header, 2)
		}
	})
}
