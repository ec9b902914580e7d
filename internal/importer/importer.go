// Package importer turns loosely-structured JSON, whether hand-pasted or
// produced by the AI generation service, into canonical document
// fragments. The upstream formats are not contractually fixed, so each
// normalizer recognizes an explicit set of input variants and resolves them
// in a deterministic order; anything unrecognizable fails as a whole, never
// partially.
package importer

import (
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	// ErrNoPhases is returned when a Gantt payload carries no phase list in
	// any recognized shape.
	ErrNoPhases = errors.New("no phases found in import data")

	// ErrNoTasks is returned when a RACI payload carries neither tasks nor
	// stakeholders in any recognized shape.
	ErrNoTasks = errors.New("no tasks or stakeholders found in import data")
)

// Normalizer converts raw import payloads into canonical fragments, minting
// fresh ids for every produced entity.
type Normalizer struct {
	newID func() string
	log   logrus.FieldLogger
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithIDFunc overrides id minting. Used by tests.
func WithIDFunc(fn func() string) Option {
	return func(n *Normalizer) { n.newID = fn }
}

// WithLogger sets the logger used for skipped-entry diagnostics.
func WithLogger(log logrus.FieldLogger) Option {
	return func(n *Normalizer) { n.log = log }
}

// New creates a Normalizer.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		newID: uuid.NewString,
		log:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}
