package distribution

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
)

// Descriptor is the declarative form of a noise distribution, as written
// by users: a kind name plus numeric fields.
//
//	{"name": "DiscreteGaussian", "stddev": 3.2}
type Descriptor struct {
	Name   string
	Fields map[string]json.Number
}

// NewDescriptor returns a descriptor for the given name and fields.
// The fields map is copied.
func NewDescriptor(name string, fields map[string]json.Number) Descriptor {

	d := Descriptor{Name: name, Fields: make(map[string]json.Number, len(fields))}

	for k, v := range fields {
		d.Fields[k] = v
	}

	return d
}

// ParseDescriptor decodes a JSON object into a Descriptor. The "name" key
// carries the kind, every other key must hold a number (null counts as absent).
func ParseDescriptor(data []byte) (d Descriptor, err error) {

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v interface{}
	if err = dec.Decode(&v); err != nil {
		return Descriptor{}, &MalformedInputError{Cause: err}
	}

	if _, err = dec.Token(); err != io.EOF {
		if err == nil {
			err = fmt.Errorf("unexpected data after top-level value")
		}
		return Descriptor{}, &MalformedInputError{Cause: err}
	}

	obj, ok := v.(map[string]interface{})
	if !ok {
		return Descriptor{}, &MalformedInputError{Msg: "Distribution spec must be a JSON object.", NotObject: true}
	}

	name, ok := obj["name"]
	if !ok || name == nil {
		return Descriptor{}, &MalformedInputError{Msg: "Distribution spec requires a 'name' field."}
	}

	switch name := name.(type) {
	case string:
		d.Name = name
	case json.Number:
		d.Name = name.String()
	default:
		return Descriptor{}, &MalformedInputError{Msg: "Distribution 'name' must be a string."}
	}

	d.Fields = map[string]json.Number{}

	for k, val := range obj {

		if k == "name" || val == nil {
			continue
		}

		num, ok := val.(json.Number)
		if !ok {
			return Descriptor{}, &MalformedInputError{Msg: fmt.Sprintf("Distribution field '%s' must be a number.", k)}
		}

		d.Fields[k] = num
	}

	return d, nil
}

// UnmarshalJSON implements json.Unmarshaler with the rules of ParseDescriptor.
func (d *Descriptor) UnmarshalJSON(data []byte) (err error) {
	var tmp Descriptor
	if tmp, err = ParseDescriptor(data); err != nil {
		return
	}
	*d = tmp
	return
}

// MarshalJSON renders the descriptor back to its JSON object form.
func (d Descriptor) MarshalJSON() ([]byte, error) {

	obj := make(map[string]interface{}, len(d.Fields)+1)
	for k, v := range d.Fields {
		obj[k] = v
	}
	obj["name"] = d.Name

	return json.Marshal(obj)
}

// Has reports whether the field is present.
func (d Descriptor) Has(field string) bool {
	_, ok := d.Fields[field]
	return ok
}

// WithDefaultModulus returns a copy of d whose "q" field is set to q when
// d does not define one. A nil q leaves the descriptor unchanged.
func (d Descriptor) WithDefaultModulus(q *big.Int) Descriptor {

	if q == nil || d.Has("q") {
		return d
	}

	out := NewDescriptor(d.Name, d.Fields)
	out.Fields["q"] = json.Number(q.String())

	return out
}

// fieldReader extracts typed fields from a descriptor and remembers the
// first failure, so the resolver reports fields in declaration order.
type fieldReader struct {
	d    Descriptor
	kind Kind
	err  error
}

func (r *fieldReader) float(field string, required bool, def float64) float64 {

	if r.err != nil {
		return 0
	}

	num, ok := r.d.Fields[field]
	if !ok {
		if required {
			r.err = missing(r.kind, field)
		}
		return def
	}

	f, err := num.Float64()
	if err != nil {
		r.err = invalid(r.kind, field, "must be a finite number")
		return 0
	}

	return f
}

func (r *fieldReader) bigInt(field string, required bool) *big.Int {

	if r.err != nil {
		return nil
	}

	num, ok := r.d.Fields[field]
	if !ok {
		if required {
			r.err = missing(r.kind, field)
		}
		return nil
	}

	x, ok := parseInteger(num)
	if !ok {
		r.err = invalid(r.kind, field, "must be an integer")
		return nil
	}

	return x
}

func (r *fieldReader) int(field string, required bool) int {

	x := r.bigInt(field, required)
	if x == nil {
		return 0
	}

	if !x.IsInt64() || x.Int64() > int64(maxInt) || x.Int64() < -int64(maxInt) {
		r.err = invalid(r.kind, field, "is out of range")
		return 0
	}

	return int(x.Int64())
}

// dimension reads the optional "n" field; 0 means unset.
func (r *fieldReader) dimension() int {

	n := r.int("n", false)
	if r.err == nil && n < 0 {
		r.err = invalid(r.kind, "n", "must be non-negative")
	}

	return n
}

const maxInt = int(^uint(0) >> 1)

// parseInteger accepts integral JSON numbers, including forms such as
// "12289.0" or "1e3".
func parseInteger(num json.Number) (x *big.Int, ok bool) {

	if x, ok = new(big.Int).SetString(num.String(), 10); ok {
		return x, true
	}

	f, _, err := big.ParseFloat(num.String(), 10, 4096, big.ToNearestEven)
	if err != nil || !f.IsInt() {
		return nil, false
	}

	x, _ = f.Int(nil)

	return x, true
}
