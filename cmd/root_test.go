package cmd

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantryhq/pantry/internal/store"
)

// withRootArgs points the root command at an in-memory database and a
// missing config file, restoring the global flag state afterwards.
func withRootArgs(t *testing.T, args ...string) {
	t.Helper()

	oldStore, oldConfig, oldDriver, oldDSN := pantryStore, configPath, dbDriver, dbDSN
	t.Cleanup(func() {
		pantryStore, configPath, dbDriver, dbDSN = oldStore, oldConfig, oldDriver, oldDSN
		rootCmd.SetArgs(nil)
	})

	base := []string{
		"--config", filepath.Join(t.TempDir(), "pantry.toml"),
		"--driver", "sqlite",
		"--database", ":memory:",
	}
	rootCmd.SetArgs(append(base, args...))
}

func addTestCommand(t *testing.T, run func(cmd *cobra.Command, args []string) error) {
	t.Helper()
	c := &cobra.Command{Use: "store-lifecycle", RunE: run}
	rootCmd.AddCommand(c)
	t.Cleanup(func() { rootCmd.RemoveCommand(c) })
}

func TestExecuteClosesStoreWhenCommandFails(t *testing.T) {
	var opened *store.Store
	addTestCommand(t, func(cmd *cobra.Command, args []string) error {
		opened = pantryStore
		return errors.New("command failed")
	})
	withRootArgs(t, "store-lifecycle")

	err := execute()
	require.EqualError(t, err, "command failed")

	require.NotNil(t, opened, "store was not opened")
	assert.Nil(t, pantryStore)
	assert.Error(t, opened.Ping(context.Background()), "store still open after failed command")
}

func TestExecuteClosesStoreOnSuccess(t *testing.T) {
	var opened *store.Store
	addTestCommand(t, func(cmd *cobra.Command, args []string) error {
		opened = pantryStore
		return nil
	})
	withRootArgs(t, "store-lifecycle")

	require.NoError(t, execute())

	require.NotNil(t, opened)
	assert.Nil(t, pantryStore)
	assert.Error(t, opened.Ping(context.Background()))
}

func TestCloseStoreWithoutStore(t *testing.T) {
	old := pantryStore
	pantryStore = nil
	t.Cleanup(func() { pantryStore = old })

	assert.NoError(t, closeStore())
}
