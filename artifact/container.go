package artifact

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"

	"github.com/hupe1980/labeltransform/codec"
	"github.com/hupe1980/labeltransform/internal/conv"
	"github.com/hupe1980/labeltransform/resource"
)

const (
	// Magic identifies label transform containers (ASCII: "LTM1").
	Magic uint32 = 0x4C544D31
	// FormatVersion is the current container format version.
	FormatVersion uint16 = 1

	headerSize = 20
)

var (
	// ErrCorrupt is returned when a container fails its integrity checks.
	ErrCorrupt = errors.New("corrupt artifact")
	// ErrInvalidMagic is returned when data is not a label transform container.
	ErrInvalidMagic = errors.New("invalid magic number")
	// ErrUnsupportedVersion is returned for containers written by a newer format.
	ErrUnsupportedVersion = errors.New("unsupported artifact version")
)

// Header describes a container.
//
// Layout (little endian):
//
//	[0:4]   magic
//	[4:6]   format version
//	[6]     compression
//	[7]     codec name length
//	[8:12]  payload size
//	[12:16] stored size
//	[16:20] CRC32 (IEEE) of the stored bytes
//	[20:]   codec name, then stored bytes
type Header struct {
	Version     uint16
	Compression Compression
	Codec       string
	Size        int
	StoredSize  int
	Checksum    uint32
}

type options struct {
	codec       codec.Codec
	compression Compression
	controller  *resource.Controller
}

// Option configures Marshal and Store.
type Option func(*options)

// WithCodec sets the codec used for the bundle payload.
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression sets the payload compression.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithController sets the controller whose IO budget a Store draws from.
// Marshal ignores it.
func WithController(c *resource.Controller) Option {
	return func(o *options) {
		o.controller = c
	}
}

// Marshal encodes a bundle into a container.
func Marshal(b Bundle, optFns ...Option) ([]byte, error) {
	o := options{codec: codec.Default, compression: CompressionZSTD}
	for _, fn := range optFns {
		fn(&o)
	}

	payload, err := o.codec.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("encode bundle with %s: %w", o.codec.Name(), err)
	}

	if len(payload) > MaxPayloadSize {
		return nil, fmt.Errorf("encode bundle: %w", errPayloadTooLarge)
	}

	stored, used, err := compress(payload, o.compression)
	if err != nil {
		return nil, fmt.Errorf("compress bundle: %w", err)
	}

	name := o.codec.Name()
	if len(name) > 255 {
		return nil, fmt.Errorf("codec name too long: %q", name)
	}
	size, err := conv.IntToUint32(len(payload))
	if err != nil {
		return nil, err
	}
	storedSize, err := conv.IntToUint32(len(stored))
	if err != nil {
		return nil, err
	}

	out := make([]byte, headerSize, headerSize+len(name)+len(stored))
	binary.LittleEndian.PutUint32(out[0:], Magic)
	binary.LittleEndian.PutUint16(out[4:], FormatVersion)
	out[6] = byte(used)
	out[7] = byte(len(name))
	binary.LittleEndian.PutUint32(out[8:], size)
	binary.LittleEndian.PutUint32(out[12:], storedSize)
	binary.LittleEndian.PutUint32(out[16:], crc32.ChecksumIEEE(stored))
	out = append(out, name...)
	out = append(out, stored...)
	return out, nil
}

// ReadHeader parses and validates the container header.
func ReadHeader(data []byte) (Header, error) {
	if len(data) < headerSize {
		return Header{}, fmt.Errorf("%w: %d bytes is shorter than the header", ErrCorrupt, len(data))
	}
	if binary.LittleEndian.Uint32(data[0:]) != Magic {
		return Header{}, ErrInvalidMagic
	}

	h := Header{
		Version:     binary.LittleEndian.Uint16(data[4:]),
		Compression: Compression(data[6]),
		Checksum:    binary.LittleEndian.Uint32(data[16:]),
	}
	if h.Version > FormatVersion {
		return Header{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}

	var err error
	if h.Size, err = conv.Uint32ToInt(binary.LittleEndian.Uint32(data[8:])); err != nil {
		return Header{}, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if h.StoredSize, err = conv.Uint32ToInt(binary.LittleEndian.Uint32(data[12:])); err != nil {
		return Header{}, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	nameLen := int(data[7])
	if len(data) != headerSize+nameLen+h.StoredSize {
		return Header{}, fmt.Errorf("%w: length %d does not match header", ErrCorrupt, len(data))
	}
	h.Codec = string(data[headerSize : headerSize+nameLen])
	return h, nil
}

// Unmarshal decodes a container produced by Marshal.
func Unmarshal(data []byte) (Bundle, error) {
	h, err := ReadHeader(data)
	if err != nil {
		return Bundle{}, err
	}

	stored := data[headerSize+len(h.Codec):]
	if crc32.ChecksumIEEE(stored) != h.Checksum {
		return Bundle{}, fmt.Errorf("%w: checksum mismatch", ErrCorrupt)
	}

	c, ok := codec.ByName(h.Codec)
	if !ok {
		return Bundle{}, fmt.Errorf("%w: unknown codec %q", ErrCorrupt, h.Codec)
	}

	payload, err := decompress(stored, h.Compression, h.Size)
	if err != nil {
		return Bundle{}, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	var b Bundle
	if err := c.Unmarshal(payload, &b); err != nil {
		return Bundle{}, fmt.Errorf("decode bundle with %s: %w", h.Codec, err)
	}
	return b, nil
}
