package vision

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// MarshalDescriptor serializes a descriptor to little-endian binary,
// DescriptorSize float32 values with no header.
func MarshalDescriptor(d *Descriptor) []byte {
	buf := new(bytes.Buffer)
	for _, v := range d {
		binary.Write(buf, binary.LittleEndian, v)
	}
	return buf.Bytes()
}

// UnmarshalDescriptor parses the binary form produced by MarshalDescriptor.
// Truncated or oversized input is rejected so a corrupt per-user file is
// detected instead of silently yielding a skewed vector.
func UnmarshalDescriptor(data []byte) (*Descriptor, error) {
	if len(data) != DescriptorSize*4 {
		return nil, fmt.Errorf("descriptor data is %d bytes, want %d", len(data), DescriptorSize*4)
	}

	var d Descriptor
	buf := bytes.NewReader(data)
	for i := 0; i < DescriptorSize; i++ {
		if err := binary.Read(buf, binary.LittleEndian, &d[i]); err != nil {
			return nil, fmt.Errorf("read descriptor element %d: %w", i, err)
		}
	}
	return &d, nil
}
