/*
actor.go - Actor extraction middleware

PURPOSE:
  The engine takes an explicit roster.Actor on every call. The
  surrounding application authenticates users; this API trusts the
  X-Actor-Id / X-Actor-Name / X-Actor-Role headers it forwards.
  Session security is explicitly out of scope here.

  Requests without a recognized role run as agent: they can read
  approved schedules and nothing else, so a missing header fails closed.

SEE ALSO:
  - roster/types.go: Role capabilities
*/
package api

import (
	"context"
	"net/http"

	"github.com/skyport/roster-engine/roster"
)

type contextKey string

const actorKey contextKey = "actor"

// WithActor reads the actor headers and stashes a roster.Actor on the
// request context.
func WithActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := roster.Role(r.Header.Get("X-Actor-Role"))
		if !role.Valid() {
			role = roster.RoleAgent
		}
		actor := roster.Actor{
			ID:       r.Header.Get("X-Actor-Id"),
			Username: r.Header.Get("X-Actor-Name"),
			Role:     role,
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), actorKey, actor)))
	})
}

// actorFrom returns the actor stashed by WithActor.
func actorFrom(r *http.Request) roster.Actor {
	actor, _ := r.Context().Value(actorKey).(roster.Actor)
	return actor
}
