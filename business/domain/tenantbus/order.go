package tenantbus

import "github.com/jcpaschoal/agenda/business/sdk/order"

// DefaultOrderBy represents the default way we sort.
var DefaultOrderBy = order.NewBy(OrderByCreatedAt, order.DESC)

// Set of fields that the results can be ordered by.
const (
	OrderByID          = "id"
	OrderByName        = "name"
	OrderByStatus      = "status"
	OrderByPlan        = "plan"
	OrderByCreatedAt   = "created_at"
	OrderByOverdueDays = "overdue_days"
)
