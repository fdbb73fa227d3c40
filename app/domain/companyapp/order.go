package companyapp

import (
	"github.com/jcpaschoal/agenda/business/domain/tenantbus"
)

var orderByFields = map[string]string{
	"company_id":   tenantbus.OrderByID,
	"name":         tenantbus.OrderByName,
	"status":       tenantbus.OrderByStatus,
	"plan":         tenantbus.OrderByPlan,
	"created_at":   tenantbus.OrderByCreatedAt,
	"overdue_days": tenantbus.OrderByOverdueDays,
}
