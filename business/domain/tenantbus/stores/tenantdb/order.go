package tenantdb

import (
	"fmt"

	"github.com/jcpaschoal/agenda/business/domain/tenantbus"
	"github.com/jcpaschoal/agenda/business/sdk/order"
)

var orderByFields = map[string]string{
	tenantbus.OrderByID:          "id",
	tenantbus.OrderByName:        "name",
	tenantbus.OrderByStatus:      "status",
	tenantbus.OrderByPlan:        "plan",
	tenantbus.OrderByCreatedAt:   "created_at",
	tenantbus.OrderByOverdueDays: "overdue_days",
}

func orderByClause(orderBy order.By) (string, error) {
	by, exists := orderByFields[orderBy.Field]
	if !exists {
		return "", fmt.Errorf("field %q does not exist", orderBy.Field)
	}

	return " ORDER BY " + by + " " + orderBy.Direction, nil
}
