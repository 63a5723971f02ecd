// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// Format names a serialization format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCBOR Format = "cbor"
)

// ParseFormat validates a format name from configuration. The empty
// string selects JSON.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatCBOR:
		return FormatCBOR, nil
	default:
		return "", fmt.Errorf("unknown codec format %q (want json or cbor)", name)
	}
}

var (
	// cborEncoder sorts map keys and uses the shortest integer forms,
	// so equal record lists encode to equal bytes.
	cborEncoder = mustEncMode(cbor.CoreDetEncOptions())

	// cborDecoder ignores unknown fields and decodes untyped maps as
	// map[string]any, matching encoding/json.
	cborDecoder = mustDecMode(cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	})
)

func mustEncMode(options cbor.EncOptions) cbor.EncMode {
	mode, err := options.EncMode()
	if err != nil {
		panic("codec: CBOR encoder options: " + err.Error())
	}
	return mode
}

func mustDecMode(options cbor.DecOptions) cbor.DecMode {
	mode, err := options.DecMode()
	if err != nil {
		panic("codec: CBOR decoder options: " + err.Error())
	}
	return mode
}

// Marshal encodes v in the given format.
func Marshal(format Format, v any) ([]byte, error) {
	switch format {
	case FormatJSON, "":
		return json.Marshal(v)
	case FormatCBOR:
		return cborEncoder.Marshal(v)
	default:
		return nil, fmt.Errorf("codec: unknown format %q", format)
	}
}

// Unmarshal decodes data in the given format into v.
func Unmarshal(format Format, data []byte, v any) error {
	switch format {
	case FormatJSON, "":
		return json.Unmarshal(data, v)
	case FormatCBOR:
		return cborDecoder.Unmarshal(data, v)
	default:
		return fmt.Errorf("codec: unknown format %q", format)
	}
}
