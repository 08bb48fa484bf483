// SPDX-FileCopyrightText: 2025 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package rle

import "fmt"

const (
	// maxLabelSize is the largest value of any label-size field.
	maxLabelSize = 15

	// DefaultMaxFragments is the per-ALPDU PPDU cap applied when
	// Config.MaxFragments is zero.
	DefaultMaxFragments = 255
)

// Config carries the link parameters shared by the transmitter and the
// receiver of an RLE channel. The zero value is not valid: at least one
// of AllowALPDUCRC or AllowALPDUSequenceNumber must be set and
// ImplicitProtocolType must name a defined compressed code.
type Config struct {
	// AllowProtocolTypeOmission omits the ALPDU protocol-type field
	// when the SDU type matches ImplicitProtocolType.
	AllowProtocolTypeOmission bool

	// UseCompressedProtocolType carries a 1-byte compressed code in the
	// ALPDU header (3-byte fallback for types without a code) instead
	// of the 2-byte uncompressed protocol type.
	UseCompressedProtocolType bool

	// AllowALPDUCRC protects fragmented ALPDUs with a 4-byte CRC-32
	// trailer.
	AllowALPDUCRC bool

	// AllowALPDUSequenceNumber protects fragmented ALPDUs with a 1-byte
	// sequence-number trailer. Must be set when AllowALPDUCRC is not.
	AllowALPDUSequenceNumber bool

	// UseExplicitPayloadHeaderMap is reserved and must be false.
	UseExplicitPayloadHeaderMap bool

	// ImplicitProtocolType is the compressed code assumed when the
	// protocol-type field is omitted. CompressedIP selects IPv4 or IPv6
	// from the version nibble of the payload.
	ImplicitProtocolType uint8

	// ImplicitPPDULabelSize, ImplicitPayloadLabelSize and
	// Type0ALPDULabelSize size the optional label fields, 0..15 bytes.
	ImplicitPPDULabelSize    uint8
	ImplicitPayloadLabelSize uint8
	Type0ALPDULabelSize      uint8

	// MaxFragments caps the number of PPDUs one ALPDU may be split
	// into. Zero selects DefaultMaxFragments.
	MaxFragments uint16
}

// Validate checks the configuration against the rules above.
func (c Config) Validate() error {
	if !validImplicitProtocolType(c.ImplicitProtocolType) {
		return fmt.Errorf("%w: implicit protocol type 0x%02x", ErrInvalidConfig, c.ImplicitProtocolType)
	}
	if c.ImplicitPPDULabelSize > maxLabelSize {
		return fmt.Errorf("%w: ppdu label size %d", ErrInvalidConfig, c.ImplicitPPDULabelSize)
	}
	if c.ImplicitPayloadLabelSize > maxLabelSize {
		return fmt.Errorf("%w: payload label size %d", ErrInvalidConfig, c.ImplicitPayloadLabelSize)
	}
	if c.Type0ALPDULabelSize > maxLabelSize {
		return fmt.Errorf("%w: type 0 alpdu label size %d", ErrInvalidConfig, c.Type0ALPDULabelSize)
	}
	if !c.AllowALPDUCRC && !c.AllowALPDUSequenceNumber {
		return fmt.Errorf("%w: neither crc nor sequence number allowed", ErrInvalidConfig)
	}
	if c.UseExplicitPayloadHeaderMap {
		return fmt.Errorf("%w: explicit payload header map is reserved", ErrInvalidConfig)
	}

	return nil
}

// maxFragments resolves the configured cap, applying the default.
func (c Config) maxFragments() uint16 {
	if c.MaxFragments == 0 {
		return DefaultMaxFragments
	}

	return c.MaxFragments
}

// trailerSize is the ALPDU trailer length used for fragmented ALPDUs
// under this configuration.
func (c Config) trailerSize() int {
	if c.AllowALPDUCRC {
		return alpduCRCTrailerSize
	}

	return alpduSeqTrailerSize
}
