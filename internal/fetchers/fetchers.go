// Package fetchers contains the job-board adapters and their registry.
package fetchers

import (
	"context"

	api "github.com/jobmatch/job-matcher/api/v1alpha1"
)

type Fetcher interface {
	Fetch(ctx context.Context, query string, limit int) ([]api.Job, error)
}

// Registry is an explicit ordered mapping of source name to fetcher. It is
// built once at wiring time and passed to the orchestrator; registration
// order defines result aggregation order for sources requested together.
type Registry struct {
	names  []string
	byName map[string]Fetcher
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Fetcher)}
}

func (r *Registry) Register(name string, f Fetcher) *Registry {
	if _, ok := r.byName[name]; !ok {
		r.names = append(r.names, name)
	}
	r.byName[name] = f
	return r
}

func (r *Registry) Get(name string) (Fetcher, bool) {
	f, ok := r.byName[name]
	return f, ok
}

// Names returns the registered source names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

func (r *Registry) Len() int {
	return len(r.names)
}

// NewDefaultRegistry wires every supported board behind one shared scraping
// client. Registration order matches api.DefaultSources.
func NewDefaultRegistry(client *Client) *Registry {
	return NewRegistry().
		Register(SourceLinkedIn, NewLinkedIn(client)).
		Register(SourceIndeed, NewIndeed(client)).
		Register(SourceGlassdoor, NewGlassdoor(client)).
		Register(SourceWellfound, NewWellfound(client)).
		Register(SourceJobrights, NewJobrights()).
		Register(SourceStartupsGallery, NewStartupsGallery(client)).
		Register(SourceBriansJobs, NewBriansJobs(client))
}
