package edge

import (
	"encoding/binary"
	"fmt"
)

// jpegOrientation pulls the EXIF orientation (1..8) out of JPEG bytes. It
// scans the segment stream for an APP1 Exif block and walks IFD0 only,
// which is where the orientation tag lives.
func jpegOrientation(data []byte) (int, error) {
	ts, err := exifTIFFStart(data)
	if err != nil {
		return 0, err
	}
	if ts+8 > len(data) {
		return 0, fmt.Errorf("tiff header truncated")
	}
	var order binary.ByteOrder
	switch {
	case data[ts] == 'M' && data[ts+1] == 'M':
		order = binary.BigEndian
	case data[ts] == 'I' && data[ts+1] == 'I':
		order = binary.LittleEndian
	default:
		return 0, fmt.Errorf("unknown tiff byte order")
	}
	if order.Uint16(data[ts+2:ts+4]) != 0x002A {
		return 0, fmt.Errorf("invalid tiff magic")
	}
	ifd := ts + int(order.Uint32(data[ts+4:ts+8]))
	if ifd < ts || ifd+2 > len(data) {
		return 0, fmt.Errorf("ifd offset out of range")
	}
	n := int(order.Uint16(data[ifd : ifd+2]))
	for e := 0; e < n; e++ {
		ent := ifd + 2 + e*12
		if ent+12 > len(data) {
			break
		}
		tag := order.Uint16(data[ent : ent+2])
		typ := order.Uint16(data[ent+2 : ent+4])
		// orientation is tag 0x0112 of type SHORT
		if tag != 0x0112 || typ != 3 {
			continue
		}
		o := int(order.Uint16(data[ent+8 : ent+10]))
		if o >= 1 && o <= 8 {
			return o, nil
		}
		return 0, fmt.Errorf("orientation %d out of range", o)
	}
	return 0, fmt.Errorf("orientation tag not found")
}

// exifTIFFStart returns the offset of the TIFF header inside an APP1 Exif
// segment, scanning markers up to start-of-scan.
func exifTIFFStart(data []byte) (int, error) {
	if len(data) < 4 {
		return -1, fmt.Errorf("data too short")
	}
	i := 2 // past SOI
	for i+4 <= len(data) {
		if data[i] != 0xFF {
			i++
			continue
		}
		marker := data[i+1]
		if marker == 0xDA { // start of scan
			break
		}
		segLen := int(data[i+2])<<8 | int(data[i+3])
		if marker == 0xE1 && segLen >= 8 && i+10 <= len(data) && string(data[i+4:i+10]) == "Exif\x00\x00" {
			return i + 10, nil
		}
		if segLen <= 2 {
			i += 2
		} else {
			i += 2 + segLen
		}
	}
	return -1, fmt.Errorf("no exif segment")
}
