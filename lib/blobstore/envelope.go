// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package blobstore

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/zeebo/blake3"
)

// Envelope layout (all integers big-endian):
//
//	magic       4 bytes  "PBLB"
//	compression 1 byte   Compression tag
//	size        4 bytes  uncompressed payload length
//	checksum   32 bytes  BLAKE3-256 of the uncompressed payload
//	payload     N bytes  compressed payload
var envelopeMagic = []byte("PBLB")

const envelopeHeaderSize = 4 + 1 + 4 + 32

// sealEnvelope compresses value with the requested algorithm (falling
// back to none when it would not shrink) and prefixes the header.
func sealEnvelope(value []byte, compression Compression) ([]byte, error) {
	payload, err := compress(value, compression)
	if errors.Is(err, errIncompressible) {
		compression = CompressionNone
		payload = value
	} else if err != nil {
		return nil, err
	}

	checksum := blake3.Sum256(value)

	envelope := make([]byte, 0, envelopeHeaderSize+len(payload))
	envelope = append(envelope, envelopeMagic...)
	envelope = append(envelope, byte(compression))
	envelope = binary.BigEndian.AppendUint32(envelope, uint32(len(value)))
	envelope = append(envelope, checksum[:]...)
	envelope = append(envelope, payload...)
	return envelope, nil
}

// openEnvelope validates and unpacks an envelope. Every failure wraps
// ErrCorrupt.
func openEnvelope(envelope []byte) ([]byte, error) {
	if len(envelope) < envelopeHeaderSize || !bytes.Equal(envelope[:4], envelopeMagic) {
		return nil, fmt.Errorf("%w: missing envelope header", ErrCorrupt)
	}
	compression := Compression(envelope[4])
	size := int(binary.BigEndian.Uint32(envelope[5:9]))
	var expected [32]byte
	copy(expected[:], envelope[9:41])

	value, err := decompress(envelope[envelopeHeaderSize:], compression, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if blake3.Sum256(value) != expected {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrCorrupt)
	}
	return value, nil
}
