package gallery

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Clock abstracts time retrieval so grouping and registries are
// deterministic in tests.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// IDGenerator produces client-side file ids. Ids only need to be unique
// within a single caller's namespace; negligible collision probability for
// one user's session is the documented bar, not global uniqueness.
type IDGenerator interface {
	New() string
}

// UUIDGenerator produces random UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) New() string { return uuid.New().String() }

// TokenIDGenerator produces ids of the form "<epoch-ms>_<random hex>",
// preserving the timestamp-plus-token scheme the ids were designed around.
type TokenIDGenerator struct {
	Clock Clock
}

func (g TokenIDGenerator) New() string {
	var buf [8]byte
	rand.Read(buf[:])
	return fmt.Sprintf("%d_%s", g.Clock.Now().UnixMilli(), hex.EncodeToString(buf[:]))
}
