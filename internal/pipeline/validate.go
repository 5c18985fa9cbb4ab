package pipeline

import (
	"strings"

	"github.com/trungnghia224/meeting-digest/internal/apierr"
)

// validate enforces the caller-input contract before any backend is touched.
func (p *implPipeline) validate(req *Request) error {
	if len(req.Audio) == 0 {
		return apierr.New("validation", apierr.KindValidation, 400, "no audio data provided")
	}

	maxBytes := p.limits.MaxAudioMB << 20
	if len(req.Audio) > maxBytes {
		return apierr.New("validation", apierr.KindValidation, 400,
			"audio too large: maximum allowed size is %dMB", p.limits.MaxAudioMB)
	}

	req.Format = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(req.Format), "."))
	if req.Format == "" {
		req.Format = "wav"
	}
	for _, f := range p.limits.Formats {
		if req.Format == f {
			return nil
		}
	}
	return apierr.New("validation", apierr.KindValidation, 400,
		"unsupported audio format %q: supported formats are %s", req.Format, strings.Join(p.limits.Formats, ", "))
}
