// Package signature computes hashed bag-of-words/bigram text signatures.
//
// A signature is a fixed-length count vector: every lowercase token and
// every adjacent-token bigram is hashed into one of Dims buckets (the
// hashing trick), so any document maps to the same vector width regardless
// of vocabulary. Cosine similarity between signatures approximates topical
// relatedness without a trained embedding model.
package signature

import (
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// Dims is the signature vector width.
const Dims = 256

// Vector is a hashed term-count signature.
type Vector = []float64

// Signer produces a signature vector for a text. It exists so a future
// implementation can substitute a true embedding provider without touching
// call sites.
type Signer interface {
	Sign(text string) Vector
}

// Hashed is the default Signer backed by Compute.
type Hashed struct{}

// Sign implements Signer.
func (Hashed) Sign(text string) Vector { return Compute(text) }

// Compute builds the hashed unigram+bigram signature for text. Blank text
// yields a zero vector.
func Compute(text string) Vector {
	vec := make(Vector, Dims)
	tokens := Tokenize(text)
	for i, tok := range tokens {
		vec[bucket(tok)]++
		if i > 0 {
			vec[bucket(tokens[i-1]+" "+tok)]++
		}
	}
	return vec
}

// Tokenize lowercases text and splits it on non-alphanumeric runs.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func bucket(term string) int {
	h := fnv.New64a()
	h.Write([]byte(term))
	return int(h.Sum64() % Dims)
}

// Cosine computes cosine similarity between two vectors. Mismatched or
// zero-norm vectors score 0.
func Cosine(a, b Vector) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
