package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mikey/phishawk/internal/adapters/console"
	"github.com/mikey/phishawk/internal/core"
	"github.com/mikey/phishawk/internal/di"
	"github.com/mikey/phishawk/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRootCommand_Subcommands(t *testing.T) {
	root := NewRootCommand()

	names := []string{}
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	assert.ElementsMatch(t, []string{"analyze", "panel", "extract"}, names)

	panel, _, err := root.Find([]string{"panel"})
	require.NoError(t, err)
	assert.NotNil(t, panel.Flags().Lookup("auto"))
	assert.NotNil(t, root.PersistentFlags().Lookup("endpoint"))
}

func extractWith(t *testing.T, page string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	pagePath := filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(pagePath, []byte(page), 0o600))
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("relay:\n  target: tab-1\n"), 0o600))

	container, err := di.BuildCLIContainer(&di.CLIFlags{ConfigFile: cfgPath, Page: pagePath})
	require.NoError(t, err)

	var out bytes.Buffer
	var runErr error
	require.NoError(t, container.Invoke(func(host ports.ExtractionHost, relay core.Relay) {
		runErr = runExtract(context.Background(), zap.NewNop(), host, relay, "tab-1", console.NewPrinter(&out, false))
	}))
	return out.String(), runErr
}

func TestRunExtract(t *testing.T) {
	out, err := extractWith(t, `<h2 class="hP">Team lunch</h2>
		<span class="gD" email="ana@example.com">Ana</span>
		<div class="a3s aiL">Friday at noon?</div>`)

	require.NoError(t, err)
	assert.Contains(t, out, "From: Ana <ana@example.com>")
	assert.Contains(t, out, "Subject: Team lunch")
}

func TestRunExtract_ListView(t *testing.T) {
	out, err := extractWith(t, `<table><tr><td>Inbox</td></tr></table>`)

	var extractionErr *core.ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.Equal(t, core.NotInMessageView, extractionErr.Reason)
	assert.Contains(t, out, "Please open an email")
}
