package mongo

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/employee-be/internal/storage/storagetest"
)

func TestExactFold(t *testing.T) {
	re := exactFold("R&D (Ops).*")
	assert.Equal(t, `^R&D \(Ops\)\.\*$`, re.Pattern)
	assert.Equal(t, "i", re.Options)
}

func TestDocRoundTripKeepsFields(t *testing.T) {
	e := employeeDoc{FirstName: "Ada", Email: "ada@example.com", Salary: 1200}.model()
	assert.Equal(t, "Ada", e.FirstName)
	assert.Equal(t, 1200.0, e.Salary)
	assert.Equal(t, "ada@example.com", newEmployeeDoc(e).Email)
}

// TestStoreIntegration runs the storage contract against a live MongoDB server.
func TestStoreIntegration(t *testing.T) {
	if os.Getenv("RUN_STORE_INTEGRATION") != "true" {
		t.Skip("set RUN_STORE_INTEGRATION=true to run this integration test")
	}
	for _, p := range []string{".env", "../.env", "../../.env", "../../../.env"} {
		_ = godotenv.Load(p)
	}

	uri := os.Getenv("MONGO_URI")
	if !strings.HasPrefix(uri, "mongodb") {
		t.Skip("MONGO_URI is not set")
	}
	database := os.Getenv("MONGO_DATABASE")
	if database == "" {
		database = "employee_directory_test"
	}

	store, err := NewStore(context.Background(), uri, database)
	require.NoError(t, err)
	defer store.Close()

	storagetest.Run(t, store)
}
