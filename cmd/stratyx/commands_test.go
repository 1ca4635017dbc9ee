package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/stratyx-planner/internal/store/storetest"
)

// runCLI executes the root command with the given stdin and returns its stdout.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		assumeYes = false
		email = ""
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
	})
	assumeYes = false

	var out bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		answer string
		want   bool
	}{
		{"s\n", true},
		{"Sim\n", true},
		{"y", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"talvez\n", false},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		got, err := confirm(strings.NewReader(tt.answer), &out, "Excluir?")
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "answer %q", tt.answer)
		assert.Contains(t, out.String(), "Excluir?")
	}
}

func TestProjectsDeleteAsksFirst(t *testing.T) {
	c := startServer(t)
	ctx := context.Background()
	const ns = "a@x.com"

	saved, err := c.SaveProject(ctx, ns, storetest.Project("", "", time.Now()), "Loja X")
	require.NoError(t, err)

	out, err := runCLI(t, "n\n", "projects", "delete", saved.ID, "-e", ns, "--url", c.baseURL)
	require.NoError(t, err)
	assert.Contains(t, out, "Exclusão cancelada")

	projects, err := c.ListProjects(ctx, ns)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, saved.ID, projects[0].ID)

	out, err = runCLI(t, "s\n", "projects", "delete", saved.ID, "-e", ns, "--url", c.baseURL)
	require.NoError(t, err)
	assert.Contains(t, out, "Projeto excluído")

	projects, err = c.ListProjects(ctx, ns)
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestProjectsDeleteWithYesSkipsPrompt(t *testing.T) {
	c := startServer(t)
	ctx := context.Background()
	const ns = "a@x.com"

	saved, err := c.SaveProject(ctx, ns, storetest.Project("", "", time.Now()), "Loja X")
	require.NoError(t, err)

	out, err := runCLI(t, "", "projects", "delete", saved.ID, "-y", "-e", ns, "--url", c.baseURL)
	require.NoError(t, err)
	assert.NotContains(t, out, "[s/N]")
	assert.Contains(t, out, "Projeto excluído")

	projects, err := c.ListProjects(ctx, ns)
	require.NoError(t, err)
	assert.Empty(t, projects)
}
