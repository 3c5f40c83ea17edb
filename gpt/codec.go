package gpt

import (
	"bytes"
	"encoding/binary"
)

// decodeInto factors the repeated binary.Read(r, binary.LittleEndian, &v)
// call into one place, shared by every fixed-size on-medium struct in
// this package (header, entries, pmbr).
func decodeInto(raw []byte, v interface{}) error {
	return binary.Read(bytes.NewReader(raw), binary.LittleEndian, v)
}

// encodeFrom is decodeInto's write-side counterpart.
func encodeFrom(v interface{}) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
