// internal/types/ids.go
package types

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type ProductionID string
type ArtifactID string
type SessionID string

// NewProductionID derives an identifier from the intake completion time.
// The downstream pipeline keys its output files on this value.
func NewProductionID(t time.Time) ProductionID {
	return ProductionID(fmt.Sprintf("video_%d", t.Unix()))
}

// NewArtifactID derives an identifier for a produced artifact awaiting
// operator confirmation.
func NewArtifactID(t time.Time) ArtifactID {
	return ArtifactID(fmt.Sprintf("download_%d", t.Unix()))
}

func NewSessionID() SessionID {
	return SessionID(uuid.New().String())
}
