// SPDX-License-Identifier: EPL-2.0

package wav

// Wave format codes from WAVEFORMATEX.
const (
	FormatPCM        = 0x0001
	FormatIEEEFloat  = 0x0003
	FormatALaw       = 0x0006
	FormatULaw       = 0x0007
	FormatExtensible = 0xFFFE
)

// SubFormat is the 16-byte descriptor carried by extensible headers: a
// format code followed by a fixed GUID tail.
type SubFormat struct {
	Format uint16
	GUID   [14]byte
}

// Header is the parsed "fmt " chunk, including the extensible fields
// when present.
type Header struct {
	Format        uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16

	ExtensionSize      uint16
	ValidBitsPerSample uint16
	ChannelMask        uint32
	SubFormat          SubFormat
}

// EffectiveFormat returns the format code samples are actually encoded
// with: the sub-format code for extensible headers, the format code
// otherwise.
func (h Header) EffectiveFormat() uint16 {
	if h.Format == FormatExtensible {
		return h.SubFormat.Format
	}
	return h.Format
}
