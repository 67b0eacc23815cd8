package checkout

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// NewClientKey generates a fresh idempotency token for one checkout
// attempt. Falls back to a time+random key when UUID generation fails,
// matching the storefront's behaviour without crypto randomness.
func NewClientKey() string {
	if id, err := uuid.NewRandom(); err == nil {
		return id.String()
	}
	return fmt.Sprintf("key_%d_%06d", time.Now().UnixMilli(), rand.Intn(1_000_000))
}
