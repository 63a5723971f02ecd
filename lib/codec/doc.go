// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec encodes the persisted record list.
//
// Two formats are supported and chosen by configuration:
//
//   - JSON (the default): human-readable, and layout-compatible with
//     the blob the browser edition of the board kept under the same
//     key, so an exported blob can be dropped into any backend.
//   - CBOR: compact binary, encoded with Core Deterministic Encoding
//     (RFC 8949 §4.2) so the same record list always produces the
//     same bytes.
//
// Types carry only `json` struct tags. fxamacker/cbor falls back to
// `json` tags when no `cbor` tag is present, so one tag controls field
// naming for both formats.
//
//	data, err := codec.Marshal(codec.FormatCBOR, records)
//	err = codec.Unmarshal(codec.FormatCBOR, data, &records)
package codec
