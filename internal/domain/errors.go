package domain

import "errors"

var (
	// ErrInvalidQuestion indicates a question failed presence or range validation.
	ErrInvalidQuestion = errors.New("invalid question")
	// ErrNoSession is returned when an operation needs an active quiz run and none exists.
	ErrNoSession = errors.New("no active quiz session")
	// ErrMalformedReply indicates the generated question text could not be decoded.
	ErrMalformedReply = errors.New("malformed generated question")
	// ErrAmbiguousReply indicates the generated question marks more than one option as correct.
	ErrAmbiguousReply = errors.New("ambiguous generated question")
	// ErrEmptyBank indicates the question bank has no questions to draw from.
	ErrEmptyBank = errors.New("question bank is empty")
)
