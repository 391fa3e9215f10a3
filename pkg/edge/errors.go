package edge

import "fmt"

// DecodeError reports input bytes that could not be turned into a usable
// raster: unparseable data, an unsupported container, or dimensions beyond
// the configured limit.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode: %s: %v", e.Reason, e.Err)
	}
	return "decode: " + e.Reason
}

func (e *DecodeError) Unwrap() error { return e.Err }

func decodeErrorf(err error, format string, args ...any) error {
	return &DecodeError{Reason: fmt.Sprintf(format, args...), Err: err}
}

// ConfigError reports a request or parameter set that is invalid before any
// pixel work starts, such as inverted Canny thresholds or an unknown
// algorithm name.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string { return "config: " + e.Reason }

func configErrorf(format string, args ...any) error {
	return &ConfigError{Reason: fmt.Sprintf(format, args...)}
}

// ProcessingError reports a failure inside the pipeline itself after inputs
// were accepted, e.g. a buffer whose length no longer matches its declared
// dimensions.
type ProcessingError struct {
	Stage  string
	Reason string
}

func (e *ProcessingError) Error() string { return e.Stage + ": " + e.Reason }

func processingErrorf(stage, format string, args ...any) error {
	return &ProcessingError{Stage: stage, Reason: fmt.Sprintf(format, args...)}
}
