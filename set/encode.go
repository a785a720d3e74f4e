package set

import (
	"github.com/cockroachdb/errors"
	"github.com/golang/protobuf/proto"
	"golang.org/x/exp/constraints"
)

// MarshalBinary encodes the members of s as a varint count followed by
// each member, zig-zag encoded, in iteration order.
func MarshalBinary[V constraints.Integer](s Reader[V]) ([]byte, error) {
	buf := proto.NewBuffer(make([]byte, 0, 1+2*s.Len()))
	if err := buf.EncodeVarint(uint64(s.Len())); err != nil {
		return nil, err
	}
	for v := range s.All() {
		if err := buf.EncodeZigzag64(uint64(int64(v))); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary replaces the contents of s with the members
// encoded in data by MarshalBinary.
func UnmarshalBinary[V constraints.Integer](data []byte, s Set[V]) (err error) {
	buf := proto.NewBuffer(data)
	n, err := buf.DecodeVarint()
	if err != nil {
		return errors.Wrapf(ErrCorrupt, "cannot decode count: %v", err)
	}
	if n > uint64(len(data)) {
		return errors.Wrapf(ErrCorrupt, "count %d exceeds encoded length %d", n, len(data))
	}
	defer func() {
		// A value outside the domain of s.
		if e := recover(); e != nil {
			perr, ok := e.(error)
			if !ok || !errors.Is(perr, ErrIllegalArgument) {
				panic(e)
			}
			err = errors.Wrapf(ErrCorrupt, "%v", perr)
		}
	}()
	s.Clear()
	for i := range n {
		x, err := buf.DecodeZigzag64()
		if err != nil {
			return errors.Wrapf(ErrCorrupt, "cannot decode value %d: %v", i, err)
		}
		v := V(int64(x))
		if int64(v) != int64(x) {
			return errors.Wrapf(ErrCorrupt, "value %d does not fit in %T", int64(x), v)
		}
		if !s.Add(v) {
			return errors.Wrapf(ErrCorrupt, "duplicate value %v", v)
		}
	}
	if rest := len(buf.Unread()); rest != 0 {
		return errors.Wrapf(ErrCorrupt, "%d trailing bytes", rest)
	}
	return nil
}
