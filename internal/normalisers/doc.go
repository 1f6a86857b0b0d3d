// Package normalisers provides implementations of the LogoNormaliser
// interface. A normaliser turns raw logo bytes into a canonical form so that
// visually identical logos share one content digest.
package normalisers
