package model

import (
	"context"

	"github.com/hari7vansh/swipehire/internal/domain/enums"
)

// Actor is the fully resolved caller identity: base profile plus the
// role-specific profile row. It is resolved once at the HTTP boundary and
// passed explicitly into every core operation, so services never reach
// back into the request for "the current user".
type Actor struct {
	UserID    int64
	ProfileID int64
	Role      enums.Role

	// RecruiterID is set when Role == RoleRecruiter.
	RecruiterID int64
	// JobSeekerID is set when Role == RoleJobSeeker.
	JobSeekerID int64
}

type actorContextKey string

const actorKey actorContextKey = "resolved_actor"

func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorKey).(Actor)
	return actor, ok
}
