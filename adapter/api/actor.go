package api

import (
	"net/http"

	"github.com/google/uuid"
	identityDomain "github.com/tutorlane/tutorlane/internal/identity/domain"
	sharedDomain "github.com/tutorlane/tutorlane/internal/shared/domain"
)

// actor identifies the authenticated caller. Authentication itself happens
// upstream (API gateway); the gateway forwards the verified identity in the
// X-Actor-ID and X-Actor-Role headers.
type actor struct {
	ID   uuid.UUID
	Role identityDomain.Role
}

func actorFromRequest(r *http.Request) (actor, error) {
	id, err := uuid.Parse(r.Header.Get("X-Actor-ID"))
	if err != nil {
		return actor{}, sharedDomain.UnauthorizedError("Missing or invalid X-Actor-ID header.")
	}

	role, err := identityDomain.ParseRole(r.Header.Get("X-Actor-Role"))
	if err != nil {
		return actor{}, sharedDomain.UnauthorizedError("Missing or invalid X-Actor-Role header.")
	}

	return actor{ID: id, Role: role}, nil
}
