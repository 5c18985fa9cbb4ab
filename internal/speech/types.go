package speech

// Wire schema of the inference pipeline endpoint. One request describes a
// sequence of tasks executed server-side in order; the response carries one
// entry per task.

const (
	taskASR           = "asr"
	taskTranslation   = "translation"
	taskLangDetection = "audio-lang-detection"
)

type pipelineRequest struct {
	PipelineTasks []pipelineTask `json:"pipelineTasks"`
	InputData     inputData      `json:"inputData"`
}

type pipelineTask struct {
	TaskType string     `json:"taskType"`
	Config   taskConfig `json:"config"`
}

type taskConfig struct {
	Language       *languagePair `json:"language,omitempty"`
	ServiceID      string        `json:"serviceId,omitempty"`
	AudioFormat    string        `json:"audioFormat,omitempty"`
	SamplingRate   int           `json:"samplingRate,omitempty"`
	PostProcessors []string      `json:"postprocessors,omitempty"`
}

type languagePair struct {
	SourceLanguage string `json:"sourceLanguage"`
	TargetLanguage string `json:"targetLanguage,omitempty"`
}

type inputData struct {
	Audio []audioPayload `json:"audio"`
}

type audioPayload struct {
	AudioContent string `json:"audioContent"`
}

type pipelineResponse struct {
	PipelineResponse []taskResponse `json:"pipelineResponse"`
}

type taskResponse struct {
	TaskType string       `json:"taskType"`
	Output   []taskOutput `json:"output"`
}

type taskOutput struct {
	Source         string           `json:"source"`
	Target         string           `json:"target"`
	LangPrediction []langPrediction `json:"langPrediction"`
}

type langPrediction struct {
	LangCode string `json:"langCode"`
}
