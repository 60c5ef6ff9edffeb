package schema

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"sort"
)

// Encode serializes a record value to the binary field payload.
//
// Fields are written in schema declaration order. Optional fields carry a
// one-byte presence flag; an absent optional field writes only the flag.
// A required field that is neither set nor defaulted fails with a
// ValidationError, as does any value whose runtime type disagrees with the
// declared field type.
//
// Value types per field type: string, int32 (int), int64 (long), float64
// (double), bool (boolean), string symbol (enum), map[string]string (map).
// A nil entry in fields is treated the same as an absent entry.
func Encode(s *Schema, fields map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	for _, f := range s.Fields {
		v, set := fields[f.Name]
		if v == nil {
			set = false
		}
		if !set {
			if f.Optional {
				buf.WriteByte(0)
				continue
			}
			if f.HasDefault {
				v = f.Default
			} else {
				return nil, &ValidationError{Record: s.Name, Field: f.Name, Reason: "required field is not set"}
			}
		} else if f.Optional {
			buf.WriteByte(1)
		}
		if err := encodeValue(&buf, s.Name, f, v); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, record string, f Field, v any) error {
	switch f.Type {
	case TypeString:
		s, ok := v.(string)
		if !ok {
			return typeError(record, f, "string", v)
		}
		writeString(buf, s)
	case TypeInt:
		switch n := v.(type) {
		case int32:
			writeVarint(buf, int64(n))
		case int:
			if int64(n) > math.MaxInt32 || int64(n) < math.MinInt32 {
				return &ValidationError{Record: record, Field: f.Name, Reason: fmt.Sprintf("value %d overflows int", n)}
			}
			writeVarint(buf, int64(n))
		default:
			return typeError(record, f, "int32", v)
		}
	case TypeLong:
		n, ok := v.(int64)
		if !ok {
			return typeError(record, f, "int64", v)
		}
		writeVarint(buf, n)
	case TypeDouble:
		d, ok := v.(float64)
		if !ok {
			return typeError(record, f, "float64", v)
		}
		var fixed [8]byte
		binary.LittleEndian.PutUint64(fixed[:], math.Float64bits(d))
		buf.Write(fixed[:])
	case TypeBoolean:
		b, ok := v.(bool)
		if !ok {
			return typeError(record, f, "bool", v)
		}
		if b {
			buf.WriteByte(1)
		} else {
			buf.WriteByte(0)
		}
	case TypeEnum:
		sym, ok := v.(string)
		if !ok {
			return typeError(record, f, "string", v)
		}
		idx := symbolIndex(f.Symbols, sym)
		if idx < 0 {
			return &ValidationError{
				Record: record,
				Field:  f.Name,
				Reason: fmt.Sprintf("value %q is not one of the declared symbols %v", sym, f.Symbols),
			}
		}
		writeUvarint(buf, uint64(idx))
	case TypeMap:
		m, ok := v.(map[string]string)
		if !ok {
			return typeError(record, f, "map[string]string", v)
		}
		// Sorted keys keep the encoding deterministic.
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		writeUvarint(buf, uint64(len(keys)))
		for _, k := range keys {
			writeString(buf, k)
			writeString(buf, m[k])
		}
	default:
		return &ValidationError{Record: record, Field: f.Name, Reason: fmt.Sprintf("unsupported field type %q", f.Type)}
	}
	return nil
}

func typeError(record string, f Field, expected string, v any) error {
	return &ValidationError{
		Record: record,
		Field:  f.Name,
		Reason: fmt.Sprintf("expected %s for %s field, got %T", expected, f.Type, v),
	}
}

func writeString(buf *bytes.Buffer, s string) {
	writeUvarint(buf, uint64(len(s)))
	buf.WriteString(s)
}

func writeUvarint(buf *bytes.Buffer, n uint64) {
	var tmp [binary.MaxVarintLen64]byte
	buf.Write(tmp[:binary.PutUvarint(tmp[:], n)])
}

// writeVarint writes a zig-zag encoded signed integer.
func writeVarint(buf *bytes.Buffer, n int64) {
	writeUvarint(buf, uint64(n<<1)^uint64(n>>63))
}
