// Package notifier delivers the final match digest to a recipient.
package notifier

import (
	"context"

	api "github.com/jobmatch/job-matcher/api/v1alpha1"
)

type Notifier interface {
	Deliver(ctx context.Context, recipient string, matches api.JobMatchList) error
}
