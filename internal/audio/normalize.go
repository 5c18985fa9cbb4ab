package audio

import (
	"context"
	"fmt"
	"os"
)

// Normalize runs the fallback chain in order. Each tier is attempted only when
// the previous one failed; the final tier always succeeds by passing the
// original bytes through untouched.
func (n *implNormalizer) Normalize(ctx context.Context, data []byte, format string) Normalized {
	target := n.cfg.TargetSampleRate

	// Tier 1: ffmpeg resample to target rate, mono, pcm_s16le.
	if out, err := n.resample(ctx, data, format); err == nil {
		n.logger.Debug(ctx, "Audio resampled to %d Hz", target)
		return *out
	} else {
		n.logger.Warn(ctx, "Primary resample failed, trying tolerant decode: %v", err)
	}

	// Tier 2/3: tolerant pure-Go decode without resampling.
	buf, err := decodeWAV(data)
	if err != nil {
		n.logger.Warn(ctx, "Tolerant decode failed, passing original bytes through: %v", err)
		return Normalized{Data: data, Fallback: FallbackRaw}
	}

	buf = downmixMono(buf)
	rate := buf.Format.SampleRate

	// Tier 2: native rate within tolerance of the target.
	if diff := rate - target; diff >= -n.cfg.ToleranceHz && diff <= n.cfg.ToleranceHz {
		encoded, err := n.encode(buf, rate)
		if err == nil {
			fb := FallbackNativeRate
			if rate == target {
				fb = FallbackNone
			}
			n.logger.Debug(ctx, "Accepted native rate %d Hz (target %d)", rate, target)
			return Normalized{Data: encoded, SampleRate: rate, Fallback: fb}
		}
		n.logger.Warn(ctx, "Re-encode at native rate failed: %v", err)
	}

	// Tier 3: fixed-step decimation when the native rate is an integer
	// multiple of the target.
	if rate > target && rate%target == 0 {
		step := rate / target
		decimated := decimate(buf, step)
		encoded, err := n.encode(decimated, target)
		if err == nil {
			n.logger.Debug(ctx, "Decimated %d Hz -> %d Hz (step %d)", rate, target, step)
			return Normalized{Data: encoded, SampleRate: target, Fallback: FallbackDecimated}
		}
		n.logger.Warn(ctx, "Re-encode after decimation failed: %v", err)
	}

	// Tier 4: raw passthrough.
	n.logger.Warn(ctx, "Audio at %d Hz cannot be normalized, passing original bytes through", rate)
	return Normalized{Data: data, Fallback: FallbackRaw}
}

// resample shells out to ffmpeg via the executor, converting the payload to
// mono pcm_s16le WAV at the target rate. Scratch files are removed on every
// exit path.
func (n *implNormalizer) resample(ctx context.Context, data []byte, format string) (*Normalized, error) {
	if format == "" {
		format = "wav"
	}

	in, err := os.CreateTemp(n.tempDir, "norm-in-*."+format)
	if err != nil {
		return nil, fmt.Errorf("create scratch input: %w", err)
	}
	defer os.Remove(in.Name())

	if _, err := in.Write(data); err != nil {
		in.Close()
		return nil, fmt.Errorf("write scratch input: %w", err)
	}
	if err := in.Close(); err != nil {
		return nil, fmt.Errorf("close scratch input: %w", err)
	}

	out, err := os.CreateTemp(n.tempDir, "norm-out-*.wav")
	if err != nil {
		return nil, fmt.Errorf("create scratch output: %w", err)
	}
	outPath := out.Name()
	out.Close()
	defer os.Remove(outPath)

	// Same invocation the transcription backend is tuned for:
	// 16kHz, mono, uncompressed PCM 16-bit little-endian.
	args := []string{
		"-y",
		"-i", in.Name(),
		"-ar", fmt.Sprintf("%d", n.cfg.TargetSampleRate),
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-threads", "0",
		outPath,
	}

	if _, err := n.executor.Execute(ctx, n.cfg.FFmpegPath, args...); err != nil {
		return nil, fmt.Errorf("ffmpeg resample: %w", err)
	}

	resampled, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("read scratch output: %w", err)
	}
	if len(resampled) == 0 {
		return nil, fmt.Errorf("ffmpeg produced empty output")
	}

	return &Normalized{
		Data:       resampled,
		SampleRate: n.cfg.TargetSampleRate,
		Fallback:   FallbackNone,
	}, nil
}
