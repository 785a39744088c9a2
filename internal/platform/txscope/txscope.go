// Package txscope defines the scoped transactional unit that every service
// operation runs inside.
//
// A Scope acquires a session, runs fn with the session bound to the context,
// commits when fn returns nil, rolls back when fn returns an error or panics,
// and always releases the session. Repositories look the session up from the
// context, so every repository call made inside fn joins the same unit.
package txscope

import "context"

// Scope demarcates one atomic unit of work.
type Scope interface {
	Run(ctx context.Context, fn func(ctx context.Context) error) error
}
