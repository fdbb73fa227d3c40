package companyapp

import (
	"net/http"
	"time"

	"github.com/jcpaschoal/agenda/app/sdk/errs"
	"github.com/jcpaschoal/agenda/business/domain/tenantbus"
	"github.com/jcpaschoal/agenda/business/types/status"
)

type queryParams struct {
	Page             string
	Rows             string
	OrderBy          string
	Name             string
	Plan             string
	Status           string
	StartCreatedDate string
	EndCreatedDate   string
}

func parseQueryParams(r *http.Request) queryParams {
	values := r.URL.Query()

	return queryParams{
		Page:             values.Get("page"),
		Rows:             values.Get("rows"),
		OrderBy:          values.Get("orderBy"),
		Name:             values.Get("name"),
		Plan:             values.Get("plan"),
		Status:           values.Get("status"),
		StartCreatedDate: values.Get("start_created_date"),
		EndCreatedDate:   values.Get("end_created_date"),
	}
}

func parseFilter(qp queryParams) (tenantbus.QueryFilter, error) {
	var fieldErrors errs.FieldErrors
	var filter tenantbus.QueryFilter

	if qp.Name != "" {
		filter.Name = &qp.Name
	}

	if qp.Plan != "" {
		filter.Plan = &qp.Plan
	}

	if qp.Status != "" {
		s, err := status.Parse(qp.Status)
		switch err {
		case nil:
			filter.Status = &s
		default:
			fieldErrors.Add("status", err)
		}
	}

	if qp.StartCreatedDate != "" {
		t, err := time.Parse(time.RFC3339, qp.StartCreatedDate)
		switch err {
		case nil:
			filter.StartCreatedAt = &t
		default:
			fieldErrors.Add("start_created_date", err)
		}
	}

	if qp.EndCreatedDate != "" {
		t, err := time.Parse(time.RFC3339, qp.EndCreatedDate)
		switch err {
		case nil:
			filter.EndCreatedAt = &t
		default:
			fieldErrors.Add("end_created_date", err)
		}
	}

	if fieldErrors != nil {
		return tenantbus.QueryFilter{}, fieldErrors.ToError()
	}

	return filter, nil
}
