package export

import (
	"encoding/binary"
	"io"

	"hdr-cubemap/internal/cube"
	"hdr-cubemap/internal/pixel"
)

// ddsMagic is "DDS " read as a little-endian uint32.
const ddsMagic uint32 = 0x20534444

type ddsPixelFormat struct {
	Size        uint32
	Flags       uint32
	FourCC      uint32
	RGBBitCount uint32
	RBitMask    uint32
	GBitMask    uint32
	BBitMask    uint32
	ABitMask    uint32
}

// ddsHeader is the 124-byte DDS_HEADER.
type ddsHeader struct {
	Size              uint32
	Flags             uint32
	Height            uint32
	Width             uint32
	PitchOrLinearSize uint32
	Depth             uint32
	MipMapCount       uint32
	Reserved1         [11]uint32
	PixelFormat       ddsPixelFormat
	Caps              uint32
	Caps2             uint32
	Caps3             uint32
	Caps4             uint32
	Reserved2         uint32
}

// newCubemapHeader returns the uncompressed BGRA8 cubemap header with all
// six faces present and no mip chain.
func newCubemapHeader(edge int) ddsHeader {
	return ddsHeader{
		Size:        124,
		Flags:       0x21007, // CAPS | HEIGHT | WIDTH | PIXELFORMAT | MIPMAPCOUNT
		Height:      uint32(edge),
		Width:       uint32(edge),
		MipMapCount: 0,
		PixelFormat: ddsPixelFormat{
			Size:        32,
			Flags:       0x41, // RGB | ALPHAPIXELS
			RGBBitCount: 32,
			RBitMask:    0x00ff0000,
			GBitMask:    0x0000ff00,
			BBitMask:    0x000000ff,
			ABitMask:    0xff000000,
		},
		Caps:  0x401008, // COMPLEX | TEXTURE | MIPMAP
		Caps2: 0xfe00,   // CUBEMAP | all six faces
	}
}

// quantize maps a float channel to a byte: values >= 1 saturate, negatives
// floor at 0, everything else truncates c*255.
func quantize(c float32) byte {
	if c >= 1 {
		return 255
	}
	if c <= 0 {
		return 0
	}
	return byte(c * 255)
}

// WriteDDS writes six faces as an uncompressed BGRA8 DDS cubemap, face by
// face in cube order. Faces go out one block per write, so w needs no
// buffering.
func WriteDDS(w io.Writer, faces cube.Faces, edge int) error {
	if err := binary.Write(w, binary.LittleEndian, ddsMagic); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, newCubemapHeader(edge)); err != nil {
		return err
	}

	block := make([]byte, edge*edge*4)
	for _, face := range faces {
		encodeBGRA(block, face)
		if _, err := w.Write(block); err != nil {
			return err
		}
	}
	return nil
}

func encodeBGRA(dst []byte, face []pixel.Pixel) {
	for j, p := range face {
		dst[j*4+0] = quantize(p.B)
		dst[j*4+1] = quantize(p.G)
		dst[j*4+2] = quantize(p.R)
		dst[j*4+3] = 255
	}
}
