package plex

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
)

// JSONConfig controls how JSON responses are decoded. It is passed into
// each decode call rather than held globally.
//
// JSON null always leaves the target field at its zero value.
type JSONConfig struct {
	// DisallowUnknownFields rejects objects with fields the result does not declare
	DisallowUnknownFields bool
	// UseNumber decodes numbers into interface{} values as json.Number
	UseNumber bool
}

// DefaultJSONConfig tolerates unknown fields and nulls
func DefaultJSONConfig() JSONConfig {
	return JSONConfig{}
}

// decoder turns a response body into a result value
type decoder interface {
	decode(data []byte, v any) error
}

type jsonDecoder struct {
	cfg JSONConfig
}

func (d jsonDecoder) decode(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if d.cfg.DisallowUnknownFields {
		dec.DisallowUnknownFields()
	}
	if d.cfg.UseNumber {
		dec.UseNumber()
	}
	if err := dec.Decode(v); err != nil {
		return err
	}
	// The body must hold exactly one JSON value
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errTrailingData
	}
	return nil
}

var errTrailingData = errors.New("unexpected data after JSON value")

type xmlDecoder struct{}

var errNoRootElement = errors.New("result type declares no named XMLName root element")

func (xmlDecoder) decode(data []byte, v any) error {
	// Without an XMLName field encoding/xml accepts any root element and
	// silently leaves the result empty.
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() == reflect.Struct {
		field, ok := t.FieldByName("XMLName")
		if !ok {
			return errNoRootElement
		}
		name, _, _ := strings.Cut(field.Tag.Get("xml"), ",")
		if name == "" {
			return errNoRootElement
		}
	}
	return xml.Unmarshal(data, v)
}

func decoderFor(ct ContentType, cfg JSONConfig) (decoder, error) {
	switch ct {
	case ContentTypeJSON:
		return jsonDecoder{cfg: cfg}, nil
	case ContentTypeXML:
		return xmlDecoder{}, nil
	default:
		return nil, fmt.Errorf("unsupported content type: %d", ct)
	}
}
