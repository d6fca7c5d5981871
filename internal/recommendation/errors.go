package recommendation

import "fmt"

// RetrievalError wraps an embedding or search provider failure. It surfaces
// to the caller; no partial result is fabricated for it.
type RetrievalError struct {
	Err error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieval failed: %v", e.Err)
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

// GenerationError wraps a transport-level failure of the generative call
// (auth, quota, network). Malformed model output is not a GenerationError;
// that is absorbed by response recovery.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
