// SPDX-FileCopyrightText: 2025 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package rle

import (
	"encoding/binary"
	"fmt"
)

const (
	alpduMaxHeaderSize  = 3
	alpduCRCTrailerSize = 4
	alpduSeqTrailerSize = 1

	seqNumMask  = 0x7
	seqNumSpace = 8
)

// Offsets into an Ethernet frame carried as an SDU.
const (
	etherTypeOffset = 12
	// vlanPtypeFieldOffset is where the VLAN header's protocol-type
	// field sits: 14-byte Ethernet header plus the 2-byte TCI.
	vlanPtypeFieldOffset = 16
)

// alpduPlan is the protocol-type decision for one SDU: which header
// bytes to prepend, the PPDU flags announcing them, and whether the
// VLAN protocol-type field is stripped from the SDU itself.
type alpduPlan struct {
	header          []byte
	labelType       uint8
	ptypeSuppressed bool
	stripVLANPtype  bool
}

// vlanPtypeStrippable reports whether a VLAN frame carries an embedded
// IPv4/IPv6 EtherType that agrees with the IP version nibble behind it,
// making the field redundant on the wire.
func vlanPtypeStrippable(payload []byte) bool {
	if len(payload) < vlanPtypeFieldOffset+3 {
		return false
	}

	inner := binary.BigEndian.Uint16(payload[vlanPtypeFieldOffset:])
	version := payload[vlanPtypeFieldOffset+2] >> 4

	return (inner == ProtocolTypeIPv4 && version == 4) ||
		(inner == ProtocolTypeIPv6 && version == 6)
}

// planALPDU decides the ALPDU header for an SDU under the given
// configuration: omission, 1-byte compression (with 3-byte fallback),
// or the 2-byte little-endian uncompressed type.
func planALPDU(conf Config, sdu SDU) alpduPlan {
	plan := alpduPlan{labelType: LabelTypeImplicitProtocolType}

	if conf.AllowProtocolTypeOmission && isSuppressible(sdu.ProtocolType, conf.ImplicitProtocolType) {
		plan.ptypeSuppressed = true
		if sdu.ProtocolType == ProtocolTypeL2S {
			// Signal frames are identified by their label type, not by
			// a protocol-type field.
			plan.labelType = LabelTypeSignal
		}

		return plan
	}

	if conf.UseCompressedProtocolType {
		if sdu.ProtocolType == ProtocolTypeVLAN && vlanPtypeStrippable(sdu.Payload) {
			plan.header = []byte{CompressedVLANNoPtypeField}
			plan.stripVLANPtype = true

			return plan
		}
		if code, ok := compressProtocolType(sdu.ProtocolType); ok {
			plan.header = []byte{code}

			return plan
		}
		plan.header = appendUint16LE([]byte{compressedFallback}, sdu.ProtocolType)

		return plan
	}

	plan.header = appendUint16LE(nil, sdu.ProtocolType)

	return plan
}

// encapsulate renders the SDU as an ALPDU inside the fragmentation
// buffer. The trailer is not part of the ALPDU yet; it is appended by
// the fragmenter once the ALPDU is known to be fragmented.
func encapsulate(conf Config, sdu SDU, buf *fragBuf) (alpduPlan, error) {
	plan := planALPDU(conf, sdu)

	buf.reset()
	stripAt := -1
	if plan.stripVLANPtype {
		stripAt = vlanPtypeFieldOffset
	}
	if err := buf.copySDU(sdu.Payload, stripAt); err != nil {
		return alpduPlan{}, err
	}
	buf.prependHeader(plan.header)

	return plan, nil
}

// parseALPDUHeader recovers the protocol-type information leading a
// reassembled ALPDU. The returned code is a compressed protocol type,
// with compressedFallback meaning "explicit carries the value"; n is
// the header length consumed.
func parseALPDUHeader(conf Config, labelType uint8, suppressed bool, data []byte) (code uint8, explicit uint16, n int, err error) {
	if labelType == LabelTypeSignal {
		return CompressedL2S, 0, 0, nil
	}

	if suppressed {
		return conf.ImplicitProtocolType, 0, 0, nil
	}

	if conf.UseCompressedProtocolType {
		if len(data) < 1 {
			return 0, 0, 0, fmt.Errorf("%w: empty alpdu header", errShortPPDU)
		}
		if data[0] == compressedFallback {
			if len(data) < alpduMaxHeaderSize {
				return 0, 0, 0, fmt.Errorf("%w: truncated fallback alpdu header", errShortPPDU)
			}

			return compressedFallback, uint16LE(data[1:]), alpduMaxHeaderSize, nil
		}

		return data[0], 0, 1, nil
	}

	if len(data) < 2 {
		return 0, 0, 0, fmt.Errorf("%w: truncated alpdu header", errShortPPDU)
	}

	return compressedFallback, uint16LE(data), 2, nil
}

// resolveSDU maps the recovered compressed protocol type and SDU bytes
// to the delivered SDU, handling the IPv4-or-IPv6 implicit code and the
// VLAN frame whose protocol-type field was stripped on the wire.
func resolveSDU(code uint8, explicit uint16, payload []byte) (SDU, error) {
	switch code {
	case compressedFallback:
		return SDU{ProtocolType: explicit, Payload: payload}, nil

	case CompressedIP:
		if len(payload) < 1 {
			return SDU{}, fmt.Errorf("%w: empty ip packet", errInvalidIPVersion)
		}
		switch payload[0] >> 4 {
		case 4:
			return SDU{ProtocolType: ProtocolTypeIPv4, Payload: payload}, nil
		case 6:
			return SDU{ProtocolType: ProtocolTypeIPv6, Payload: payload}, nil
		}

		return SDU{}, fmt.Errorf("%w: version nibble %d", errInvalidIPVersion, payload[0]>>4)

	case CompressedVLANNoPtypeField:
		return rebuildVLAN(payload)
	}

	if ptype, ok := decompressProtocolType(code); ok {
		return SDU{ProtocolType: ptype, Payload: payload}, nil
	}

	return SDU{}, fmt.Errorf("%w: 0x%02x", errUnknownPtypeCode, code)
}

// rebuildVLAN restores the protocol-type field of a VLAN frame sent
// with code CompressedVLANNoPtypeField. The IP version nibble right
// after the truncated VLAN header picks the restored EtherType; the
// delivered SDU grows by the 2 reinserted bytes.
func rebuildVLAN(payload []byte) (SDU, error) {
	if len(payload) < vlanPtypeFieldOffset+1 {
		return SDU{}, fmt.Errorf("%w: %d bytes", errMalformedVLAN, len(payload))
	}
	if outer := binary.BigEndian.Uint16(payload[etherTypeOffset:]); outer != ProtocolTypeVLAN {
		return SDU{}, fmt.Errorf("%w: outer ethertype 0x%04x", errMalformedVLAN, outer)
	}

	var inner uint16
	switch payload[vlanPtypeFieldOffset] >> 4 {
	case 4:
		inner = ProtocolTypeIPv4
	case 6:
		inner = ProtocolTypeIPv6
	default:
		return SDU{}, fmt.Errorf("%w: ip version nibble %d", errMalformedVLAN, payload[vlanPtypeFieldOffset]>>4)
	}

	rebuilt := make([]byte, 0, len(payload)+2)
	rebuilt = append(rebuilt, payload[:vlanPtypeFieldOffset]...)
	rebuilt = append(rebuilt, byte(inner>>8), byte(inner))
	rebuilt = append(rebuilt, payload[vlanPtypeFieldOffset:]...)

	return SDU{ProtocolType: ProtocolTypeVLAN, Payload: rebuilt}, nil
}
