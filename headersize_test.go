// SPDX-FileCopyrightText: 2025 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package rle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderSize(t *testing.T) {
	conf := validConfig()

	size, err := HeaderSize(conf, FPDUTypeLogon)
	require.NoError(t, err)
	assert.Equal(t, 6, size)

	size, err = HeaderSize(conf, FPDUTypeControl)
	require.NoError(t, err)
	assert.Equal(t, 3, size)

	size, err = HeaderSize(conf, FPDUTypeTrafficControl)
	require.NoError(t, err)
	assert.Equal(t, 5, size)

	_, err = HeaderSize(conf, FPDUTypeTraffic)
	assert.ErrorIs(t, err, ErrNonDeterministicHeaderSize)

	_, err = HeaderSize(conf, FPDUType(42))
	assert.Error(t, err)
}

func TestHeaderSizeInvalidConfig(t *testing.T) {
	conf := validConfig()
	conf.ImplicitProtocolType = CompressedVLANNoPtypeField

	_, err := HeaderSize(conf, FPDUTypeLogon)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
