package tenantbus

import (
	"time"

	"github.com/jcpaschoal/agenda/business/types/status"
)

// QueryFilter holds the available fields a query can be filtered on.
type QueryFilter struct {
	Name           *string
	Plan           *string
	Status         *status.Status
	StartCreatedAt *time.Time
	EndCreatedAt   *time.Time
}
