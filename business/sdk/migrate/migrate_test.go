package migrate_test

import (
	"strings"
	"testing"

	"github.com/jcpaschoal/agenda/business/sdk/migrate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatements(t *testing.T) {
	stmts := migrate.Statements()
	require.NotEmpty(t, stmts)

	var tables []string
	for _, s := range stmts {
		assert.False(t, strings.HasSuffix(s, ";"), s)
		assert.False(t, strings.HasPrefix(s, "--"), s)

		if rest, ok := strings.CutPrefix(s, "CREATE TABLE IF NOT EXISTS "); ok {
			tables = append(tables, strings.Fields(rest)[0])
		}
	}

	assert.Equal(t, []string{
		"companies", "users", "services", "professionals", "clients", "appointments", "expenses", "invoices",
	}, tables)
}

func TestStatements_Constraints(t *testing.T) {
	doc := strings.Join(migrate.Statements(), "\n")

	for _, c := range []string{"uq_companies_custom_url", "uq_users_email", "fk_users_company", "fk_clients_company"} {
		assert.Contains(t, doc, c)
	}
}

func TestStatements_TenantScopedReferences(t *testing.T) {
	doc := strings.Join(migrate.Statements(), "\n")

	for _, c := range []string{
		"FOREIGN KEY (company_id, client_id) REFERENCES clients(company_id, id)",
		"FOREIGN KEY (company_id, professional_id) REFERENCES professionals(company_id, id)",
		"FOREIGN KEY (company_id, service_id) REFERENCES services(company_id, id)",
		"FOREIGN KEY (company_id, user_id) REFERENCES users(company_id, id) ON DELETE SET NULL (user_id)",
	} {
		assert.Contains(t, doc, c)
	}
}
