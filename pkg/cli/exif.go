package cli

import (
	"encoding/binary"
	"fmt"
)

const exifOrientationTag = 0x0112

// tiffStartFromJPEG scans JPEG segments for an APP1 Exif block and returns
// the offset where its TIFF header begins.
func tiffStartFromJPEG(data []byte) (int, error) {
	if len(data) < 4 || data[0] != 0xFF || data[1] != 0xD8 {
		return -1, fmt.Errorf("not a jpeg")
	}
	i := 2
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

// ExifOrientation returns the orientation tag (1..8) stored in IFD0 of a JPEG.
func ExifOrientation(data []byte) (int, error) {
	start, err := tiffStartFromJPEG(data)
	if err != nil {
		return 0, err
	}
	if start+8 > len(data) {
		return 0, fmt.Errorf("tiff header truncated")
	}
	var order binary.ByteOrder
	switch string(data[start : start+2]) {
	case "MM":
		order = binary.BigEndian
	case "II":
		order = binary.LittleEndian
	default:
		return 0, fmt.Errorf("unknown tiff byte order")
	}
	if order.Uint16(data[start+2:start+4]) != 0x002A {
		return 0, fmt.Errorf("invalid tiff magic")
	}
	ifd := start + int(order.Uint32(data[start+4:start+8]))
	if ifd <= start || ifd+2 > len(data) {
		return 0, fmt.Errorf("ifd0 out of range")
	}
	n := int(order.Uint16(data[ifd : ifd+2]))
	for e := 0; e < n; e++ {
		ent := ifd + 2 + e*12
		if ent+12 > len(data) {
			break
		}
		if order.Uint16(data[ent:ent+2]) != exifOrientationTag {
			continue
		}
		// SHORT, count 1: value sits in the first two bytes of the offset field
		if order.Uint16(data[ent+2:ent+4]) != 3 {
			return 0, fmt.Errorf("orientation tag has type %d", order.Uint16(data[ent+2:ent+4]))
		}
		v := int(order.Uint16(data[ent+8 : ent+10]))
		if v < 1 || v > 8 {
			return 0, fmt.Errorf("orientation %d out of range", v)
		}
		return v, nil
	}
	return 0, fmt.Errorf("orientation tag not found")
}
