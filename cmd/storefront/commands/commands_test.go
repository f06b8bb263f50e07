package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ToNga156/FinalProject/cmd/storefront/output"
	"github.com/ToNga156/FinalProject/internal/auth"
	"github.com/ToNga156/FinalProject/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	auth.Cost = bcrypt.MinCost
}

// run executes the root command against db and returns what it printed.
func run(t *testing.T, db string, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	output.Out = &buf
	t.Cleanup(func() { output.Out = os.Stdout })

	err := new(app).execute(context.Background(), append([]string{"--db", db}, args...))
	return buf.String(), err
}

func TestFilterCommand(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")

	out, err := run(t, db, "product", "filter", "--json", "--name", "Áo", "--min", "100000", "--max", "300000")
	require.NoError(t, err)

	var products []models.Product
	require.NoError(t, json.Unmarshal([]byte(out), &products))
	assert.Len(t, products, 2)

	_, err = run(t, db, "product", "filter", "--min", "abc")
	assert.Error(t, err)
}

func TestCheckoutCommands(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")

	_, err := run(t, db, "user", "add", "lan", "--password", "secret1")
	require.NoError(t, err)
	_, err = run(t, db, "cart", "add", "7", "--user", "lan", "--qty", "2")
	require.NoError(t, err)
	_, err = run(t, db, "cart", "add", "9", "--user", "lan", "--qty", "1")
	require.NoError(t, err)

	out, err := run(t, db, "order", "checkout", "--json", "--user", "lan",
		"--address", "123 Main St, City", "--phone", "0912345678")
	require.NoError(t, err)

	var order models.Order
	require.NoError(t, json.Unmarshal([]byte(out), &order))
	assert.Equal(t, models.StatusPending, order.Status)
	assert.True(t, decimal.NewFromInt(2850000).Equal(order.TotalAmount))

	out, err = run(t, db, "cart", "list", "--json", "--user", "lan")
	require.NoError(t, err)
	var cart struct {
		Lines []models.CartLine `json:"lines"`
		Total decimal.Decimal   `json:"total"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &cart))
	assert.Empty(t, cart.Lines)
	assert.True(t, cart.Total.IsZero())

	_, err = run(t, db, "order", "status", "1", "shipped")
	assert.Error(t, err)
	out, err = run(t, db, "order", "status", "1", "confirmed")
	require.NoError(t, err)
	assert.Contains(t, out, "Next:")
	assert.NotContains(t, out, "final")

	out, err = run(t, db, "order", "status", "1", "delivered")
	require.NoError(t, err)
	assert.Contains(t, out, "delivered is final")
	assert.NotContains(t, out, "Next:")
}

func TestUnknownUser(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")
	_, err := run(t, db, "order", "list", "--user", "ghost")
	assert.ErrorContains(t, err, `user "ghost" not found`)
}

func TestUserListMarksAdmins(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")
	_, err := run(t, db, "user", "add", "lan", "--password", "secret1")
	require.NoError(t, err)

	out, err := run(t, db, "user", "list")
	require.NoError(t, err)
	var adminLine, lanLine string
	for _, line := range strings.Split(out, "\n") {
		switch {
		case strings.Contains(line, " admin "):
			adminLine = line
		case strings.Contains(line, " lan "):
			lanLine = line
		}
	}
	assert.Contains(t, adminLine, "★")
	assert.NotContains(t, lanLine, "★")

	out, err = run(t, db, "user", "show", "admin")
	require.NoError(t, err)
	assert.Regexp(t, `admin\s+true`, out)
	out, err = run(t, db, "user", "show", "lan")
	require.NoError(t, err)
	assert.Regexp(t, `admin\s+false`, out)
}

func TestExecuteReleasesStore(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")
	output.Out = io.Discard
	t.Cleanup(func() { output.Out = os.Stdout })

	a := &app{}
	require.NoError(t, a.execute(context.Background(), []string{"--db", db, "category", "list"}))
	assert.Nil(t, a.store)

	// A failing command skips the post-run hook.
	a = &app{}
	err := a.execute(context.Background(), []string{"--db", db, "order", "list", "--user", "ghost"})
	require.Error(t, err)
	assert.Nil(t, a.store)
	assert.Nil(t, a.shop)
}

func TestFlagsDoNotLeakBetweenRuns(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")

	_, err := run(t, db, "category", "list", "--json")
	require.NoError(t, err)

	out, err := run(t, db, "category", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
}
