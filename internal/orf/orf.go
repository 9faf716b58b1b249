package orf

import (
	"math"
	"time"
)

// SelfCorrectionWindow is how long a reader has to fix an error for it to
// count as self-corrected.
const SelfCorrectionWindow = 3 * time.Second

// ErrorKind classifies a marked reading error.
type ErrorKind string

const (
	Substitution ErrorKind = "substitution"
	Omission     ErrorKind = "omission"
	Insertion    ErrorKind = "insertion"
	Reversal     ErrorKind = "reversal"
	Hesitation   ErrorKind = "hesitation"
	Unknown      ErrorKind = "unknown"
)

// AllErrorKinds returns every error kind.
func AllErrorKinds() []ErrorKind {
	return []ErrorKind{Substitution, Omission, Insertion, Reversal, Hesitation, Unknown}
}

// Valid reports whether k is a defined kind.
func (k ErrorKind) Valid() bool {
	switch k {
	case Substitution, Omission, Insertion, Reversal, Hesitation, Unknown:
		return true
	}
	return false
}

// ErrorMark is one observed error in a timed read-aloud.
type ErrorMark struct {
	WordIndex int       `json:"word_index"`
	WordText  string    `json:"word_text"`
	Kind      ErrorKind `json:"kind"`
	// Corrected is true when the reader fixed the error within
	// SelfCorrectionWindow.
	Corrected bool `json:"corrected"`
}

// Metrics are the oral reading fluency figures derived from one passage.
type Metrics struct {
	TotalWords      int     `json:"total_words"`
	WordsCorrect    int     `json:"words_correct"`
	ErrorsTotal     int     `json:"errors_total"`
	SelfCorrections int     `json:"self_corrections"`
	DurationSeconds float64 `json:"duration_seconds"`
	AccuracyPct     float64 `json:"accuracy_pct"`
	WCPM            float64 `json:"wcpm"`
	ErrorRate       float64 `json:"error_rate"`
}

// Calculate derives fluency metrics from a passage word count, the marked
// errors and the elapsed reading time.
//
// Only uncorrected errors count. Insertions are errors but do not consume
// a passage word, so they never reduce WordsCorrect. Zero words or zero
// duration yield zero rates; negative inputs are treated as zero.
func Calculate(totalWords int, marks []ErrorMark, durationSeconds float64) Metrics {
	totalWords = max(totalWords, 0)
	if durationSeconds < 0 || math.IsNaN(durationSeconds) || math.IsInf(durationSeconds, 0) {
		durationSeconds = 0
	}

	var uncorrected, nonInsertion, selfCorrections int
	for _, m := range marks {
		if m.Corrected {
			selfCorrections++
			continue
		}
		uncorrected++
		if m.Kind != Insertion {
			nonInsertion++
		}
	}

	wordsCorrect := max(0, totalWords-nonInsertion)

	m := Metrics{
		TotalWords:      totalWords,
		WordsCorrect:    wordsCorrect,
		ErrorsTotal:     uncorrected,
		SelfCorrections: selfCorrections,
		DurationSeconds: durationSeconds,
	}
	if minutes := durationSeconds / 60; minutes > 0 {
		m.WCPM = round1(float64(wordsCorrect) / minutes)
	}
	if totalWords > 0 {
		m.AccuracyPct = round1(float64(wordsCorrect) / float64(totalWords) * 100)
		m.ErrorRate = round1(float64(uncorrected) / float64(totalWords) * 100)
	}
	return m
}

// round1 rounds half up to one decimal place.
func round1(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}
