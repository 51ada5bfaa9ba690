// Package testing provides test doubles for the koji package.
package testing

import (
	"github.com/osg-htc/kojicron/internal/errors"
)

// FakeClient simulates the koji client for testing. Tests configure the
// tag list, which tags fail to regenerate, and whether auth succeeds; the
// fake records every call it receives.
type FakeClient struct {
	// Tags is what ListTags returns.
	Tags []string

	// ListTagsErr, when set, is returned by ListTags instead.
	ListTagsErr error

	// HelloErr, when set, is returned by Hello.
	HelloErr error

	// FailTags marks tags whose regeneration reports failure.
	FailTags map[string]bool

	// RegenErr, when set, is returned by every RegenRepo call.
	RegenErr error

	// Call records.
	ListTagsCalls int
	HelloCalls    int
	RegenCalls    []RegenCall
}

// RegenCall records one RegenRepo invocation.
type RegenCall struct {
	Tag  string
	Wait bool
}

// ListTags returns the configured tag list.
func (f *FakeClient) ListTags() ([]string, error) {
	f.ListTagsCalls++
	if f.ListTagsErr != nil {
		return nil, f.ListTagsErr
	}
	return f.Tags, nil
}

// Hello returns the configured auth outcome.
func (f *FakeClient) Hello() error {
	f.HelloCalls++
	return f.HelloErr
}

// RegenRepo records the call and reports failure for tags in FailTags.
func (f *FakeClient) RegenRepo(tag string, wait bool) (bool, error) {
	f.RegenCalls = append(f.RegenCalls, RegenCall{Tag: tag, Wait: wait})
	if f.RegenErr != nil {
		return false, f.RegenErr
	}
	return !f.FailTags[tag], nil
}

// RegenTags returns the tags passed to RegenRepo, in call order.
func (f *FakeClient) RegenTags() []string {
	tags := make([]string, 0, len(f.RegenCalls))
	for _, c := range f.RegenCalls {
		tags = append(tags, c.Tag)
	}
	return tags
}

// NewAuthError returns an auth failure like the real client produces.
func NewAuthError(exitCode int) error {
	return errors.Newf(errors.KindAuth,
		"return code %d authenticating to Koji.\nStdout:\n\nStderr:\n", exitCode)
}
