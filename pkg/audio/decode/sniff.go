package decode

import "bytes"

// sniffedFormat is a container format detected from file content.
type sniffedFormat string

const (
	formatUnknown   sniffedFormat = "unknown"
	formatWAV       sniffedFormat = "wav"
	formatAIFF      sniffedFormat = "aiff"
	formatMP3       sniffedFormat = "mp3"
	formatOggVorbis sniffedFormat = "ogg-vorbis"
	formatOggOpus   sniffedFormat = "ogg-opus"
)

// sniffFormat inspects magic bytes to identify the container, ignoring the
// claimed extension entirely.
func sniffFormat(data []byte) sniffedFormat {
	switch {
	case len(data) >= 12 && bytes.Equal(data[:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WAVE")):
		return formatWAV
	case len(data) >= 12 && bytes.Equal(data[:4], []byte("FORM")) &&
		(bytes.Equal(data[8:12], []byte("AIFF")) || bytes.Equal(data[8:12], []byte("AIFC"))):
		return formatAIFF
	case len(data) >= 4 && bytes.Equal(data[:4], []byte("OggS")):
		// Discriminate the codec from the first page's payload.
		head := data
		if len(head) > 512 {
			head = head[:512]
		}
		if bytes.Contains(head, []byte("OpusHead")) {
			return formatOggOpus
		}
		if bytes.Contains(head, []byte("\x01vorbis")) {
			return formatOggVorbis
		}
		return formatOggVorbis
	case len(data) >= 3 && bytes.Equal(data[:3], []byte("ID3")):
		return formatMP3
	case len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0:
		// Bare MPEG frame sync without an ID3 tag.
		return formatMP3
	default:
		return formatUnknown
	}
}

// decodeBySniffing auto-detects the format from content and dispatches to
// the matching decoder. This is what rescues uploads whose extension lies.
func decodeBySniffing(blob Blob) (rawPCM, error) {
	switch sniffFormat(blob.Data) {
	case formatWAV:
		return decodeWAV(blob.Data)
	case formatAIFF:
		return decodeAIFF(blob.Data)
	case formatMP3:
		return decodeMP3(blob.Data)
	case formatOggVorbis:
		return decodeOggVorbis(blob.Data)
	case formatOggOpus:
		return decodeOggOpus(blob.Data)
	default:
		return rawPCM{}, NewError(ErrCodeInvalidFormat, "no known container signature in content", nil)
	}
}
