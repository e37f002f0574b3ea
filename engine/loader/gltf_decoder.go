// gltf_decoder.go turns embedded base64 payloads into typed little-endian numeric sequences.
// Every decoder is pure and either returns the full result or an error, never a partial slice.
package loader

import (
	"encoding/base64"
	"encoding/binary"
	"math"
	"strings"
	"unsafe"

	"github.com/Carmen-Shannon/beagle-go/common"
)

// dataURIPrefix is the only buffer URI form accepted by the loader.
const dataURIPrefix = "data:application/octet-stream;base64,"

// normalizedComponent lists the unsigned integer types DecodeVec4Normalized accepts.
type normalizedComponent interface {
	~uint8 | ~uint16 | ~uint32
}

// DecodeDataURI decodes an inline octet-stream data URI into raw bytes.
//
// Parameters:
//   - uri: the buffer URI, which must start with "data:application/octet-stream;base64,"
//
// Returns:
//   - []byte: the decoded payload
//   - error: a StructuralError of kind KindUnsupportedScheme or KindMalformedBase64
func DecodeDataURI(uri string) ([]byte, error) {
	if !strings.HasPrefix(uri, dataURIPrefix) {
		scheme := uri
		if i := strings.IndexByte(uri, ','); i >= 0 {
			scheme = uri[:i+1]
		}
		if len(scheme) > 64 {
			scheme = scheme[:64] + "..."
		}
		return nil, newStructuralError(KindUnsupportedScheme, "buffer uri", -1,
			"expected prefix %q, got %q", dataURIPrefix, scheme)
	}

	payload := uri[strings.IndexByte(uri, ',')+1:]
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, newStructuralError(KindMalformedBase64, "buffer uri", -1, "%v", err)
	}
	return data, nil
}

// DecodeScalarsU16 reinterprets b as consecutive little-endian uint16 values.
//
// Parameters:
//   - b: the raw bytes, whose length must be a multiple of 2
//
// Returns:
//   - []uint16: the decoded values
//   - error: a KindMisalignedBuffer StructuralError if the length is odd
func DecodeScalarsU16(b []byte) ([]uint16, error) {
	if len(b)%2 != 0 {
		return nil, newStructuralError(KindMisalignedBuffer, "u16 scalars", -1,
			"length %d is not a multiple of 2", len(b))
	}

	out := make([]uint16, len(b)/2)
	for i := range out {
		out[i] = binary.LittleEndian.Uint16(b[i*2:])
	}
	return out, nil
}

// DecodeVec3F32 reinterprets b as consecutive groups of three little-endian float32 values.
//
// Parameters:
//   - b: the raw bytes, whose length must be a multiple of 12
//
// Returns:
//   - []common.Vector3: the decoded vectors
//   - error: a KindMisalignedBuffer StructuralError if the length is not a multiple of 12
func DecodeVec3F32(b []byte) ([]common.Vector3, error) {
	if len(b)%12 != 0 {
		return nil, newStructuralError(KindMisalignedBuffer, "vec3 f32", -1,
			"length %d is not a multiple of 12", len(b))
	}

	out := make([]common.Vector3, len(b)/12)
	for i := range out {
		o := i * 12
		out[i] = common.Vector3{
			X: math.Float32frombits(binary.LittleEndian.Uint32(b[o:])),
			Y: math.Float32frombits(binary.LittleEndian.Uint32(b[o+4:])),
			Z: math.Float32frombits(binary.LittleEndian.Uint32(b[o+8:])),
		}
	}
	return out, nil
}

// DecodeVec4Normalized reinterprets b as groups of four little-endian unsigned integers of type T,
// dividing each by the maximum value of T so every component lands in [0, 1].
//
// Parameters:
//   - b: the raw bytes, whose length must be a multiple of 4*sizeof(T)
//
// Returns:
//   - []common.Vector4: the normalized vectors
//   - error: a KindMisalignedBuffer StructuralError if the length does not fit whole groups
func DecodeVec4Normalized[T normalizedComponent](b []byte) ([]common.Vector4, error) {
	var zero T
	size := int(unsafe.Sizeof(zero))
	stride := size * 4
	if len(b)%stride != 0 {
		return nil, newStructuralError(KindMisalignedBuffer, "normalized vec4", -1,
			"length %d is not a multiple of %d", len(b), stride)
	}

	maxValue := float32(^T(0))
	read := func(p []byte) float32 {
		switch size {
		case 1:
			return float32(p[0])
		case 2:
			return float32(binary.LittleEndian.Uint16(p))
		default:
			return float32(binary.LittleEndian.Uint32(p))
		}
	}

	out := make([]common.Vector4, len(b)/stride)
	for i := range out {
		o := i * stride
		out[i] = common.Vector4{
			X: read(b[o:]) / maxValue,
			Y: read(b[o+size:]) / maxValue,
			Z: read(b[o+2*size:]) / maxValue,
			W: read(b[o+3*size:]) / maxValue,
		}
	}
	return out, nil
}
