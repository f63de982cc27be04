// TasteMatch - Restaurant Discovery and Hybrid Recommendations
// Copyright 2026 TasteMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastematch/tastematch

package recommend

import "math"

// cosine computes the cosine similarity between two dense vectors.
// A zero-norm vector yields 0, never NaN. Vectors of different lengths
// are compared over the shorter prefix.
func cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
	}
	for _, v := range a {
		normA += v * v
	}
	for _, v := range b {
		normB += v * v
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// cosineSparse computes cosine similarity between two sparse vectors keyed
// by user ID. Missing keys are treated as 0.
func cosineSparse(a, b map[string]float64) float64 {
	var dot, normA, normB float64
	for key, va := range a {
		normA += va * va
		if vb, ok := b[key]; ok {
			dot += va * vb
		}
	}
	for _, vb := range b {
		normB += vb * vb
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// CosineMatrix computes the full pairwise cosine similarity matrix for the
// given vectors. The result is symmetric with a unit diagonal for non-zero
// vectors and 0 everywhere a zero-norm vector is involved.
func CosineMatrix(vectors [][]float64) [][]float64 {
	n := len(vectors)
	sim := make([][]float64, n)
	for i := range sim {
		sim[i] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			s := cosine(vectors[i], vectors[j])
			sim[i][j] = s
			sim[j][i] = s
		}
	}
	return sim
}
