package driven

// LogoNormaliser converts raw logo bytes into a canonical representation.
// Visually identical logos that only differ in formatting must normalise to
// identical bytes, so that they share one content digest.
type LogoNormaliser interface {
	// Extension returns the file extension of normalised logos (without dot).
	Extension() string

	// Normalise returns the canonical form of data.
	Normalise(data []byte) ([]byte, error)
}
