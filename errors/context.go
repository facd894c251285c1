package errors

import "errors"

// asPlatform returns err as a *platformError, converting plain errors to
// CodeUnknown/permanent.
func asPlatform(err error) *platformError {
	var platformErr PlatformError
	if errors.As(err, &platformErr) {
		return &platformError{
			code:           platformErr.Code(),
			classification: platformErr.Classification(),
			message:        platformErr.Message(),
			context:        platformErr.Context(),
			cause:          platformErr.Unwrap(),
		}
	}
	return &platformError{
		code:           CodeUnknown,
		classification: ClassificationPermanent,
		message:        err.Error(),
		cause:          err,
	}
}

// WithContext returns a copy of err with one context field added.
// Returns nil if err is nil.
//
//	err = errors.WithContext(err, "key", "reports/2024.csv")
func WithContext(err error, key string, value interface{}) PlatformError {
	if err == nil {
		return nil
	}
	out := asPlatform(err)
	if out.context == nil {
		out.context = make(map[string]interface{}, 1)
	}
	out.context[key] = value
	return out
}

// WithContextMap returns a copy of err with ctx merged into its context.
// New fields override existing ones. Returns nil if err is nil.
func WithContextMap(err error, ctx map[string]interface{}) PlatformError {
	if err == nil {
		return nil
	}
	out := asPlatform(err)
	if out.context == nil {
		out.context = make(map[string]interface{}, len(ctx))
	}
	for k, v := range ctx {
		out.context[k] = v
	}
	return out
}

// WithClassification returns a copy of err with its classification overridden.
// Returns nil if err is nil.
func WithClassification(err error, classification ErrorClassification) PlatformError {
	if err == nil {
		return nil
	}
	out := asPlatform(err)
	out.classification = classification
	return out
}
