package audio

import "context"

// Fallback records which tier of the normalization chain produced the result.
type Fallback string

const (
	// FallbackNone means the payload was resampled (or already was) at the
	// target rate.
	FallbackNone Fallback = ""

	// FallbackNativeRate means the payload decoded cleanly at a rate within
	// tolerance of the target and was kept at its native rate.
	FallbackNativeRate Fallback = "native-rate"

	// FallbackDecimated means the payload was downsampled by fixed-step
	// decimation.
	FallbackDecimated Fallback = "decimated"

	// FallbackRaw means normalization gave up and the original bytes were
	// passed through untouched.
	FallbackRaw Fallback = "raw"
)

// Normalized is the outcome of a normalization attempt. SampleRate is zero
// when the fallback is raw, since the payload was never decoded.
type Normalized struct {
	Data       []byte
	SampleRate int
	Fallback   Fallback
}

// Normalizer converts an uploaded audio payload into the canonical encoding
// the transcription backend expects: uncompressed mono WAV at the target
// sample rate. It never fails; the worst case is a raw passthrough of the
// original bytes.
type Normalizer interface {
	Normalize(ctx context.Context, data []byte, format string) Normalized
}
