package speech

import "encoding/binary"

// EncodeWAV wraps the PCM data in a RIFF/WAVE container.
func EncodeWAV(a *Audio) []byte {
	byteRate := a.SampleRate * a.Channels * a.BitsPerSample / 8
	blockAlign := a.Channels * a.BitsPerSample / 8
	dataSize := len(a.PCM)

	buf := make([]byte, 44+dataSize)

	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], uint32(36+dataSize))
	copy(buf[8:12], "WAVE")

	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], 16) // PCM sub-chunk size
	binary.LittleEndian.PutUint16(buf[20:22], 1)  // format: PCM
	binary.LittleEndian.PutUint16(buf[22:24], uint16(a.Channels))
	binary.LittleEndian.PutUint32(buf[24:28], uint32(a.SampleRate))
	binary.LittleEndian.PutUint32(buf[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(buf[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(buf[34:36], uint16(a.BitsPerSample))

	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], uint32(dataSize))
	copy(buf[44:], a.PCM)

	return buf
}
