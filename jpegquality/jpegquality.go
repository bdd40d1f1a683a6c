// Package jpegquality estimates the quality setting a JPEG was encoded
// with by inverting the IJG quantization table scaling. The estimate is
// exact for encoders using the standard tables (image/jpeg does) and a
// close approximation otherwise.
package jpegquality

import (
	"bytes"
	"errors"
	"io"
)

var (
	ErrInvalidJPEG  = errors.New("invalid JPEG header")
	ErrWrongTable   = errors.New("wrong size for quantization table")
	ErrShortSegment = errors.New("short segment length")
	ErrShortDQT     = errors.New("section DQT is too short")
)

// standard luminance quantization table from the JPEG specification
// (Annex K), natural order
var stdLuminance = [64]int{
	16, 11, 10, 16, 24, 40, 51, 61,
	12, 12, 14, 19, 26, 58, 60, 55,
	14, 13, 16, 24, 40, 57, 69, 56,
	14, 17, 22, 29, 51, 87, 80, 62,
	18, 22, 37, 56, 68, 109, 103, 77,
	24, 35, 55, 64, 81, 104, 113, 92,
	49, 64, 78, 87, 103, 121, 120, 101,
	72, 92, 95, 98, 112, 100, 103, 99,
}

// unzigzag maps the zigzag position a coefficient is stored at in the
// stream to its natural-order index
var unzigzag = [64]int{
	0, 1, 8, 16, 9, 2, 3, 10,
	17, 24, 32, 25, 18, 11, 4, 5,
	12, 19, 26, 33, 40, 48, 41, 34,
	27, 20, 13, 6, 7, 14, 21, 28,
	35, 42, 49, 56, 57, 50, 43, 36,
	29, 22, 15, 23, 30, 37, 44, 51,
	58, 59, 52, 45, 38, 31, 39, 46,
	53, 60, 61, 54, 47, 55, 62, 63,
}

// Reader holds the quality estimated from a parsed JPEG stream.
type Reader struct {
	quality int
}

// New rewinds the stream and estimates its encoding quality.
func New(rs io.ReadSeeker) (*Reader, error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	jr := &jpegReader{rs: rs}
	q, err := jr.scanQuality()
	if err != nil {
		return nil, err
	}
	return &Reader{quality: q}, nil
}

// NewWithBytes estimates the encoding quality of an in-memory JPEG.
func NewWithBytes(data []byte) (*Reader, error) {
	return New(bytes.NewReader(data))
}

// Quality returns the estimated encoder quality setting, 1 to 100.
func (r *Reader) Quality() int {
	return r.quality
}

type jpegReader struct {
	rs io.ReadSeeker
}

// readMarker scans forward to the next real marker, stepping over fill
// bytes and stuffed zeroes. Returns 0 on any read failure.
func (jr *jpegReader) readMarker() int {
	var mark [2]byte
	for {
		if _, err := io.ReadFull(jr.rs, mark[:]); err != nil {
			return 0
		}
		if mark[0] == 0xff && mark[1] != 0xff && mark[1] != 0x00 {
			return int(mark[0])<<8 | int(mark[1])
		}
		if _, err := jr.rs.Seek(-1, io.SeekCurrent); err != nil {
			return 0
		}
	}
}

// scanQuality walks the marker stream up to the scan data and derives the
// quality from the first luminance quantization table it sees.
func (jr *jpegReader) scanQuality() (int, error) {
	if jr.readMarker() != 0xffd8 {
		return 0, ErrInvalidJPEG
	}

	var lenBuf [2]byte
	for {
		marker := jr.readMarker()
		switch {
		case marker == 0, marker == 0xffd9, marker == 0xffda:
			// ran off the stream, hit EOI or scan data without a DQT
			return 0, ErrInvalidJPEG
		case marker == 0xff01, marker >= 0xffd0 && marker <= 0xffd7:
			// standalone markers carry no payload
			continue
		}

		if _, err := io.ReadFull(jr.rs, lenBuf[:]); err != nil {
			return 0, ErrShortSegment
		}
		length := (int(lenBuf[0])<<8 | int(lenBuf[1])) - 2
		if length < 0 {
			return 0, ErrShortSegment
		}

		if marker != 0xffdb {
			if _, err := jr.rs.Seek(int64(length), io.SeekCurrent); err != nil {
				return 0, ErrShortSegment
			}
			continue
		}

		seg := make([]byte, length)
		if _, err := io.ReadFull(jr.rs, seg); err != nil {
			return 0, ErrShortDQT
		}
		if q, err := luminanceQuality(seg); err != nil || q > 0 {
			return q, err
		}
	}
}

// luminanceQuality parses the tables of one DQT segment and estimates the
// quality from the luminance table (destination 0). Returns 0 with no
// error when the segment only carries chrominance tables.
func luminanceQuality(seg []byte) (int, error) {
	for len(seg) > 0 {
		precision := seg[0] >> 4
		dest := seg[0] & 0x0f
		if precision > 1 {
			return 0, ErrWrongTable
		}
		size := 64
		if precision == 1 {
			size = 128
		}
		if len(seg) < 1+size {
			return 0, ErrShortDQT
		}

		if dest == 0 {
			var table [64]int
			for n := range 64 {
				if precision == 1 {
					table[unzigzag[n]] = int(seg[1+2*n])<<8 | int(seg[2+2*n])
				} else {
					table[unzigzag[n]] = int(seg[1+n])
				}
			}
			return estimate(table), nil
		}
		seg = seg[1+size:]
	}
	return 0, nil
}

// estimate inverts the IJG scaling formula q = (base*scale + 50) / 100 and
// maps the averaged scale factor back to the 1-100 quality range.
func estimate(table [64]int) int {
	var sum float64
	for n := range 64 {
		q := table[n]
		if q < 1 {
			q = 1
		}
		sum += (float64(q)*100 - 50) / float64(stdLuminance[n])
	}
	scale := sum / 64

	var quality float64
	if scale <= 100 {
		quality = (200 - scale) / 2
	} else {
		quality = 5000 / scale
	}
	q := int(quality + 0.5)
	if q < 1 {
		q = 1
	}
	if q > 100 {
		q = 100
	}
	return q
}
