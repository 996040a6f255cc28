package main

import (
	"strings"
	"testing"
)

// The bootstrap schema must enforce the same invariants the application
// validates, and every foreign key must point at a table this service
// itself populates.
func TestSchemaDeclaresColumnConstraints(t *testing.T) {
	constraints := []string{
		// users is populated by the actor upsert, so created_by can be a
		// real foreign key.
		"created_by UUID NOT NULL REFERENCES users(id)",
		"price BIGINT NOT NULL CHECK (price >= 0)",
		"client_name VARCHAR(20) NOT NULL",
		"phone_number TEXT NOT NULL",
		"profile_name TEXT NOT NULL",
		"active_account_id UUID NOT NULL REFERENCES active_accounts(id)",
		"service_id UUID NOT NULL REFERENCES services(id)",
	}

	for _, c := range constraints {
		if !strings.Contains(schemaDDL, c) {
			t.Errorf("schema missing constraint %q", c)
		}
	}
}

func TestSchemaKeepsClientStatusExpirationNullable(t *testing.T) {
	idx := strings.Index(schemaDDL, "client_statuses")
	if idx < 0 {
		t.Fatal("schema missing client_statuses table")
	}
	block := schemaDDL[idx:]
	if strings.Contains(block, "expiration_date TIMESTAMPTZ NOT NULL") {
		t.Error("client_statuses.expiration_date must stay nullable")
	}
}
