package search

// Recorder receives search and suggestion outcomes for metrics.
type Recorder interface {
	ObserveSearch(outcome string)
	ObserveSuggestions(source string)
}

// NoopRecorder discards all observations.
type NoopRecorder struct{}

func (NoopRecorder) ObserveSearch(string)      {}
func (NoopRecorder) ObserveSuggestions(string) {}
