package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// EncodeWAV packs float32 mono samples into a 16-bit PCM WAV byte stream.
// The recognizer accepts exactly this container.
func EncodeWAV(samples []float32, sampleRate int) []byte {
	dataSize := len(samples) * 2

	var buf bytes.Buffer
	buf.Grow(44 + dataSize)

	// RIFF header
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")

	// fmt chunk, PCM mono 16-bit
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1))
	binary.Write(&buf, binary.LittleEndian, uint16(1))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate*2))
	binary.Write(&buf, binary.LittleEndian, uint16(2))
	binary.Write(&buf, binary.LittleEndian, uint16(16))

	// data chunk
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(dataSize))

	for _, s := range samples {
		if s > 1.0 {
			s = 1.0
		}
		if s < -1.0 {
			s = -1.0
		}
		binary.Write(&buf, binary.LittleEndian, int16(s*32767))
	}

	return buf.Bytes()
}

// parseWAV extracts the sample rate and raw PCM data from a WAV byte stream
func parseWAV(data []byte) (float64, []byte, error) {
	if len(data) < 44 {
		return 0, nil, fmt.Errorf("too small to be a valid WAV")
	}

	if string(data[0:4]) != "RIFF" {
		return 0, nil, fmt.Errorf("not a valid RIFF file")
	}
	if string(data[8:12]) != "WAVE" {
		return 0, nil, fmt.Errorf("not a valid WAVE file")
	}

	pos := 12
	var sampleRate uint32
	var dataStart, dataSize int

	for pos < len(data)-8 {
		chunkID := string(data[pos : pos+4])
		chunkSize := binary.LittleEndian.Uint32(data[pos+4 : pos+8])

		switch chunkID {
		case "fmt ":
			if chunkSize >= 16 {
				sampleRate = binary.LittleEndian.Uint32(data[pos+12 : pos+16])
			}
		case "data":
			dataStart = pos + 8
			dataSize = int(chunkSize)
		}

		pos += 8 + int(chunkSize)
		if pos%2 != 0 {
			pos++ // chunks are word-aligned
		}
	}

	if sampleRate == 0 || dataStart == 0 {
		return 0, nil, fmt.Errorf("missing required WAV chunks")
	}

	if dataStart+dataSize > len(data) {
		dataSize = len(data) - dataStart
	}

	return float64(sampleRate), data[dataStart : dataStart+dataSize], nil
}
