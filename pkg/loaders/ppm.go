package loaders

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"
)

// ErrBadPPM is returned for malformed PPM data
var ErrBadPPM = errors.New("malformed ppm")

// maxPPMPixels bounds the pixel count a header may declare before anything is allocated
const maxPPMPixels = 1 << 28

func init() {
	image.RegisterFormat("ppm", "P3", DecodePPM, DecodePPMConfig)
	image.RegisterFormat("ppm", "P6", DecodePPM, DecodePPMConfig)
}

type ppmHeader struct {
	magic         string
	width, height int
	maxValue      int
}

// ppmReader tokenizes PPM headers and P3 bodies, skipping # comments
type ppmReader struct {
	r *bufio.Reader
}

func (p *ppmReader) token() (string, error) {
	var buf []byte
	for {
		b, err := p.r.ReadByte()
		if err != nil {
			if err == io.EOF && len(buf) > 0 {
				return string(buf), nil
			}
			return "", err
		}
		switch {
		case b == '#' && len(buf) == 0:
			if _, err := p.r.ReadString('\n'); err != nil && err != io.EOF {
				return "", err
			}
		case b == ' ' || b == '\t' || b == '\n' || b == '\r':
			if len(buf) > 0 {
				return string(buf), nil
			}
		default:
			buf = append(buf, b)
		}
	}
}

func (p *ppmReader) int() (int, error) {
	tok, err := p.token()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBadPPM, err)
	}
	v, err := strconv.Atoi(tok)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: bad number %q", ErrBadPPM, tok)
	}
	return v, nil
}

func (p *ppmReader) header() (ppmHeader, error) {
	var h ppmHeader
	magic, err := p.token()
	if err != nil {
		return h, fmt.Errorf("%w: %v", ErrBadPPM, err)
	}
	if magic != "P3" && magic != "P6" {
		return h, fmt.Errorf("%w: unsupported magic %q", ErrBadPPM, magic)
	}
	h.magic = magic

	if h.width, err = p.int(); err != nil {
		return h, err
	}
	if h.height, err = p.int(); err != nil {
		return h, err
	}
	if h.width == 0 || h.height == 0 {
		return h, fmt.Errorf("%w: empty image %dx%d", ErrBadPPM, h.width, h.height)
	}
	if h.width > maxPPMPixels || h.height > maxPPMPixels/h.width {
		return h, fmt.Errorf("%w: image %dx%d too large", ErrBadPPM, h.width, h.height)
	}
	if h.maxValue, err = p.int(); err != nil {
		return h, err
	}
	if h.maxValue == 0 || h.maxValue > 255 {
		return h, fmt.Errorf("%w: unsupported max value %d", ErrBadPPM, h.maxValue)
	}
	return h, nil
}

// DecodePPMConfig reads only the header of a P3 or P6 image
func DecodePPMConfig(r io.Reader) (image.Config, error) {
	p := &ppmReader{r: bufio.NewReader(r)}
	h, err := p.header()
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: color.RGBAModel, Width: h.width, Height: h.height}, nil
}

// DecodePPM reads an 8-bit P3 (ASCII) or P6 (binary) image
func DecodePPM(r io.Reader) (image.Image, error) {
	p := &ppmReader{r: bufio.NewReader(r)}
	h, err := p.header()
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, h.width, h.height))
	scale := func(v int) uint8 {
		return uint8(v * 255 / h.maxValue)
	}

	for y := 0; y < h.height; y++ {
		for x := 0; x < h.width; x++ {
			var rgb [3]int
			for c := range rgb {
				if h.magic == "P3" {
					if rgb[c], err = p.int(); err != nil {
						return nil, err
					}
				} else {
					b, err := p.r.ReadByte()
					if err != nil {
						return nil, fmt.Errorf("%w: truncated pixel data: %v", ErrBadPPM, err)
					}
					rgb[c] = int(b)
				}
				if rgb[c] > h.maxValue {
					return nil, fmt.Errorf("%w: sample %d exceeds max value %d", ErrBadPPM, rgb[c], h.maxValue)
				}
			}
			img.SetRGBA(x, y, color.RGBA{R: scale(rgb[0]), G: scale(rgb[1]), B: scale(rgb[2]), A: 255})
		}
	}

	return img, nil
}
