package audio

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// decodeWAV decodes a WAV payload into a PCM buffer without resampling.
func decodeWAV(data []byte) (*audio.IntBuffer, error) {
	d := wav.NewDecoder(bytes.NewReader(data))
	if !d.IsValidFile() {
		return nil, fmt.Errorf("not a valid wav payload")
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode pcm: %w", err)
	}
	if buf == nil || buf.Format == nil || buf.Format.SampleRate == 0 || len(buf.Data) == 0 {
		return nil, fmt.Errorf("decoded wav payload is empty")
	}

	return buf, nil
}

// downmixMono averages all channels into one. Single-channel buffers are
// returned unchanged.
func downmixMono(buf *audio.IntBuffer) *audio.IntBuffer {
	channels := buf.Format.NumChannels
	if channels <= 1 {
		return buf
	}

	frames := len(buf.Data) / channels
	mono := make([]int, frames)
	for i := 0; i < frames; i++ {
		sum := 0
		for c := 0; c < channels; c++ {
			sum += buf.Data[i*channels+c]
		}
		mono[i] = sum / channels
	}

	return &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: buf.Format.SampleRate},
		Data:           mono,
		SourceBitDepth: buf.SourceBitDepth,
	}
}

// decimate keeps every step-th sample of a mono buffer.
func decimate(buf *audio.IntBuffer, step int) *audio.IntBuffer {
	if step <= 1 {
		return buf
	}

	out := make([]int, 0, len(buf.Data)/step+1)
	for i := 0; i < len(buf.Data); i += step {
		out = append(out, buf.Data[i])
	}

	return &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: buf.Format.SampleRate / step},
		Data:           out,
		SourceBitDepth: buf.SourceBitDepth,
	}
}

// encode writes the buffer as a canonical uncompressed mono WAV file at the
// given sample rate and returns its bytes. The wav encoder needs a seekable
// writer, so a scratch file is used and removed before returning.
func (n *implNormalizer) encode(buf *audio.IntBuffer, sampleRate int) ([]byte, error) {
	f, err := os.CreateTemp(n.tempDir, "norm-enc-*.wav")
	if err != nil {
		return nil, fmt.Errorf("create scratch file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	bitDepth := buf.SourceBitDepth
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		bitDepth = 16
	}

	out := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           buf.Data,
		SourceBitDepth: bitDepth,
	}

	e := wav.NewEncoder(f, sampleRate, bitDepth, 1, 1)
	if err := e.Write(out); err != nil {
		e.Close()
		f.Close()
		return nil, fmt.Errorf("encode wav: %w", err)
	}
	if err := e.Close(); err != nil {
		f.Close()
		return nil, fmt.Errorf("finalize wav: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close scratch file: %w", err)
	}

	return os.ReadFile(path)
}
