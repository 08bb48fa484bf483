// SPDX-FileCopyrightText: 2025 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package rle

// Uncompressed protocol types (EtherType values) with dedicated
// compressed codes.
const (
	ProtocolTypeL2S        = 0x0082
	ProtocolTypeIPv4       = 0x0800
	ProtocolTypeARP        = 0x0806
	ProtocolTypeVLAN       = 0x8100
	ProtocolTypeIPv6       = 0x86dd
	ProtocolTypeQinQ       = 0x88a8
	ProtocolTypeQinQLegacy = 0x9100
)

// Compressed protocol type codes.
const (
	// CompressedIPv4 stands for EtherType 0x0800.
	CompressedIPv4 = 0x0d
	// CompressedARP stands for EtherType 0x0806.
	CompressedARP = 0x0e
	// CompressedVLAN stands for EtherType 0x8100 with the VLAN
	// protocol-type field present.
	CompressedVLAN = 0x0f
	// CompressedIPv6 stands for EtherType 0x86dd.
	CompressedIPv6 = 0x11
	// CompressedQinQ stands for EtherType 0x88a8.
	CompressedQinQ = 0x19
	// CompressedQinQLegacy stands for EtherType 0x9100.
	CompressedQinQLegacy = 0x1a
	// CompressedIP stands for either IPv4 or IPv6; the receiver decides
	// from the version nibble of the payload. Only valid as an implicit
	// protocol type.
	CompressedIP = 0x30
	// CompressedVLANNoPtypeField stands for EtherType 0x8100 with the
	// VLAN protocol-type field suppressed from the SDU. Never valid as
	// an implicit protocol type.
	CompressedVLANNoPtypeField = 0x31
	// CompressedL2S stands for the level-2 signalling type 0x0082.
	CompressedL2S = 0x42
	// compressedFallback introduces the 2-byte uncompressed protocol
	// type for values without a dedicated code.
	compressedFallback = 0xff
)

// compressProtocolType returns the dedicated compressed code for a
// protocol type, or false when only the fallback encoding applies.
func compressProtocolType(ptype uint16) (uint8, bool) {
	switch ptype {
	case ProtocolTypeIPv4:
		return CompressedIPv4, true
	case ProtocolTypeARP:
		return CompressedARP, true
	case ProtocolTypeVLAN:
		return CompressedVLAN, true
	case ProtocolTypeIPv6:
		return CompressedIPv6, true
	case ProtocolTypeQinQ:
		return CompressedQinQ, true
	case ProtocolTypeQinQLegacy:
		return CompressedQinQLegacy, true
	case ProtocolTypeL2S:
		return CompressedL2S, true
	}

	return 0, false
}

// decompressProtocolType reverses compressProtocolType. CompressedIP
// and CompressedVLANNoPtypeField are not directly reversible; the
// receiver resolves them from the reassembled payload.
func decompressProtocolType(code uint8) (uint16, bool) {
	switch code {
	case CompressedIPv4:
		return ProtocolTypeIPv4, true
	case CompressedARP:
		return ProtocolTypeARP, true
	case CompressedVLAN:
		return ProtocolTypeVLAN, true
	case CompressedIPv6:
		return ProtocolTypeIPv6, true
	case CompressedQinQ:
		return ProtocolTypeQinQ, true
	case CompressedQinQLegacy:
		return ProtocolTypeQinQLegacy, true
	case CompressedL2S:
		return ProtocolTypeL2S, true
	}

	return 0, false
}

// isSuppressible reports whether the protocol-type field may be omitted
// from the ALPDU header given the configured implicit protocol type.
// L2S traffic is always suppressible since it is identified by its
// label type. A VLAN type against CompressedIP is not suppressible.
func isSuppressible(ptype uint16, implicit uint8) bool {
	switch ptype {
	case ProtocolTypeL2S:
		return true
	case ProtocolTypeVLAN:
		return implicit == CompressedVLAN
	case ProtocolTypeQinQ:
		return implicit == CompressedQinQ
	case ProtocolTypeQinQLegacy:
		return implicit == CompressedQinQLegacy
	case ProtocolTypeIPv4:
		return implicit == CompressedIPv4 || implicit == CompressedIP
	case ProtocolTypeIPv6:
		return implicit == CompressedIPv6 || implicit == CompressedIP
	case ProtocolTypeARP:
		return implicit == CompressedARP
	}

	return false
}

// validImplicitProtocolType reports whether a compressed code may be
// used as the configured implicit protocol type.
func validImplicitProtocolType(code uint8) bool {
	switch code {
	case CompressedIPv4, CompressedARP, CompressedVLAN, CompressedIPv6,
		CompressedQinQ, CompressedQinQLegacy, CompressedIP, CompressedL2S:
		return true
	}

	return false
}
