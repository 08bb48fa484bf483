// SPDX-FileCopyrightText: 2025 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package rle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() Config {
	return Config{
		AllowALPDUSequenceNumber: true,
		ImplicitProtocolType:     CompressedIPv4,
	}
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())

	conf := validConfig()
	conf.ImplicitProtocolType = CompressedVLANNoPtypeField
	assert.ErrorIs(t, conf.Validate(), ErrInvalidConfig)

	conf = validConfig()
	conf.ImplicitProtocolType = 0x20
	assert.ErrorIs(t, conf.Validate(), ErrInvalidConfig)

	conf = validConfig()
	conf.ImplicitPPDULabelSize = 16
	assert.ErrorIs(t, conf.Validate(), ErrInvalidConfig)

	conf = validConfig()
	conf.ImplicitPayloadLabelSize = 16
	assert.ErrorIs(t, conf.Validate(), ErrInvalidConfig)

	conf = validConfig()
	conf.Type0ALPDULabelSize = 16
	assert.ErrorIs(t, conf.Validate(), ErrInvalidConfig)

	conf = validConfig()
	conf.AllowALPDUSequenceNumber = false
	assert.ErrorIs(t, conf.Validate(), ErrInvalidConfig)

	conf = validConfig()
	conf.AllowALPDUSequenceNumber = false
	conf.AllowALPDUCRC = true
	assert.NoError(t, conf.Validate())

	conf = validConfig()
	conf.UseExplicitPayloadHeaderMap = true
	assert.ErrorIs(t, conf.Validate(), ErrInvalidConfig)
}

func TestConfigTrailerSize(t *testing.T) {
	conf := validConfig()
	assert.Equal(t, alpduSeqTrailerSize, conf.trailerSize())

	conf.AllowALPDUCRC = true
	assert.Equal(t, alpduCRCTrailerSize, conf.trailerSize())
}

func TestConfigMaxFragments(t *testing.T) {
	conf := validConfig()
	assert.Equal(t, uint16(DefaultMaxFragments), conf.maxFragments())

	conf.MaxFragments = 8
	assert.Equal(t, uint16(8), conf.maxFragments())
}

func TestNewTransmitterRejectsInvalidConfig(t *testing.T) {
	conf := validConfig()
	conf.ImplicitProtocolType = CompressedVLANNoPtypeField

	trmt, err := NewTransmitter(conf)
	assert.Nil(t, trmt)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	rcvr, err := NewReceiver(conf)
	assert.Nil(t, rcvr)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
