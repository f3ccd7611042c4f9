package deriver

import (
	"github.com/google/uuid"

	"github.com/projecteru2/nsuuid/source"
)

// Options selects what to derive. Source is required; Namespace overrides
// the Deriver's default namespace when non-nil.
type Options struct {
	Namespace *uuid.UUID
	Source    source.Source
}

// Validate checks that a name source is present.
func (o Options) Validate() error {
	s := o.Source
	if s.Path == "" && s.Content == nil && !s.Stdin {
		return source.ErrMissingInput
	}
	return nil
}

// ForContent is a shorthand for literal content under namespace ns.
func ForContent(ns uuid.UUID, content string) Options {
	return Options{Namespace: &ns, Source: source.Text(content)}
}

// ForFile is a shorthand for file content under namespace ns.
func ForFile(ns uuid.UUID, path string) Options {
	return Options{Namespace: &ns, Source: source.File(path)}
}
