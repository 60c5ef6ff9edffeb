package schema

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"
)

// Decode deserializes a binary field payload produced with the writer schema
// and projects it onto the reader schema.
//
// Resolution rule, applied per reader field:
//   - declared by the writer and present in the payload: take the writer's
//     value; the only permitted implicit conversion is long to double
//   - otherwise, if the reader field has a default: take the default
//   - otherwise, if the reader field is optional: leave it absent
//   - otherwise: fail with a SchemaMismatchError naming the field
//
// Fields the writer declares but the reader does not are decoded (the payload
// has no skip markers) and discarded. Structural failures — truncation, corrupt
// varints, out-of-range enum indexes, trailing bytes — fail with a
// MalformedMessageError.
func Decode(writer, reader *Schema, payload []byte) (map[string]any, error) {
	r := &byteReader{data: payload}

	written := make(map[string]any, len(writer.Fields))
	for _, f := range writer.Fields {
		if f.Optional {
			flag, err := r.readByte()
			if err != nil {
				return nil, err
			}
			switch flag {
			case 0:
				continue
			case 1:
			default:
				return nil, &MalformedMessageError{
					Offset: r.off - 1,
					Reason: fmt.Sprintf("invalid presence flag 0x%02x for field %q", flag, f.Name),
				}
			}
		}
		v, err := decodeValue(r, f)
		if err != nil {
			return nil, err
		}
		written[f.Name] = v
	}
	if r.off != len(r.data) {
		return nil, &MalformedMessageError{
			Offset: r.off,
			Reason: fmt.Sprintf("%d trailing bytes after last field", len(r.data)-r.off),
		}
	}

	out := make(map[string]any, len(reader.Fields))
	for _, rf := range reader.Fields {
		if wf, declared := writer.Field(rf.Name); declared {
			if v, present := written[rf.Name]; present {
				resolved, err := resolveValue(reader.Name, wf, rf, v)
				if err != nil {
					return nil, err
				}
				out[rf.Name] = resolved
				continue
			}
			// Declared optional by the writer but absent from this message;
			// fall through to the default handling below.
		}
		switch {
		case rf.HasDefault:
			out[rf.Name] = rf.Default
		case rf.Optional:
		default:
			return nil, &SchemaMismatchError{
				Record: reader.Name,
				Field:  rf.Name,
				Reason: "required field has no value from the writer schema and no default",
			}
		}
	}
	return out, nil
}

// resolveValue reconciles a decoded writer value against the reader's field
// declaration.
func resolveValue(record string, wf, rf Field, v any) (any, error) {
	if wf.Type == rf.Type {
		if rf.Type == TypeEnum {
			sym := v.(string)
			if symbolIndex(rf.Symbols, sym) < 0 {
				return nil, &SchemaMismatchError{
					Record: record,
					Field:  rf.Name,
					Reason: fmt.Sprintf("writer symbol %q is not one of the reader symbols %v", sym, rf.Symbols),
				}
			}
		}
		return v, nil
	}
	if rf.Type == TypeDouble && wf.Type == TypeLong {
		return float64(v.(int64)), nil
	}
	return nil, &SchemaMismatchError{
		Record: record,
		Field:  rf.Name,
		Reason: fmt.Sprintf("writer type %s is not assignable to reader type %s", wf.Type, rf.Type),
	}
}

func decodeValue(r *byteReader, f Field) (any, error) {
	switch f.Type {
	case TypeString:
		return r.readString()
	case TypeInt:
		n, err := r.readVarint()
		if err != nil {
			return nil, err
		}
		if n > math.MaxInt32 || n < math.MinInt32 {
			return nil, &MalformedMessageError{Offset: r.off, Reason: fmt.Sprintf("int field %q overflows 32 bits", f.Name)}
		}
		return int32(n), nil
	case TypeLong:
		return r.readVarint()
	case TypeDouble:
		return r.readDouble()
	case TypeBoolean:
		b, err := r.readByte()
		if err != nil {
			return nil, err
		}
		switch b {
		case 0:
			return false, nil
		case 1:
			return true, nil
		}
		return nil, &MalformedMessageError{Offset: r.off - 1, Reason: fmt.Sprintf("invalid boolean byte 0x%02x", b)}
	case TypeEnum:
		idx, err := r.readUvarint()
		if err != nil {
			return nil, err
		}
		if idx >= uint64(len(f.Symbols)) {
			return nil, &MalformedMessageError{
				Offset: r.off,
				Reason: fmt.Sprintf("enum index %d out of range for field %q (%d symbols)", idx, f.Name, len(f.Symbols)),
			}
		}
		return f.Symbols[idx], nil
	case TypeMap:
		count, err := r.readUvarint()
		if err != nil {
			return nil, err
		}
		if count > uint64(len(r.data)-r.off)/2 {
			return nil, &MalformedMessageError{Offset: r.off, Reason: fmt.Sprintf("map entry count %d exceeds remaining payload", count)}
		}
		m := make(map[string]string, count)
		for i := uint64(0); i < count; i++ {
			k, err := r.readString()
			if err != nil {
				return nil, err
			}
			v, err := r.readString()
			if err != nil {
				return nil, err
			}
			m[k] = v
		}
		return m, nil
	}
	return nil, &MalformedMessageError{Offset: r.off, Reason: fmt.Sprintf("unsupported field type %q", f.Type)}
}

// byteReader tracks an offset into the payload so structural errors can report
// where parsing stopped.
type byteReader struct {
	data []byte
	off  int
}

func (r *byteReader) readByte() (byte, error) {
	if r.off >= len(r.data) {
		return 0, &MalformedMessageError{Offset: r.off, Reason: "unexpected end of payload"}
	}
	b := r.data[r.off]
	r.off++
	return b, nil
}

func (r *byteReader) readUvarint() (uint64, error) {
	v, n := binary.Uvarint(r.data[r.off:])
	if n <= 0 {
		return 0, &MalformedMessageError{Offset: r.off, Reason: "corrupt varint"}
	}
	r.off += n
	return v, nil
}

// readVarint reads a zig-zag encoded signed integer.
func (r *byteReader) readVarint() (int64, error) {
	u, err := r.readUvarint()
	if err != nil {
		return 0, err
	}
	return int64(u>>1) ^ -int64(u&1), nil
}

func (r *byteReader) readDouble() (float64, error) {
	if len(r.data)-r.off < 8 {
		return 0, &MalformedMessageError{Offset: r.off, Reason: "unexpected end of payload in double field"}
	}
	bits := binary.LittleEndian.Uint64(r.data[r.off:])
	r.off += 8
	return math.Float64frombits(bits), nil
}

func (r *byteReader) readString() (string, error) {
	n, err := r.readUvarint()
	if err != nil {
		return "", err
	}
	if n > uint64(len(r.data)-r.off) {
		return "", &MalformedMessageError{Offset: r.off, Reason: fmt.Sprintf("string length %d exceeds remaining payload", n)}
	}
	s := string(r.data[r.off : r.off+int(n)])
	r.off += int(n)
	if !utf8.ValidString(s) {
		return "", &MalformedMessageError{Offset: r.off, Reason: "string is not valid UTF-8"}
	}
	return s, nil
}
