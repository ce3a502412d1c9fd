package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const knowledgeFixture = `{
  "meta": {"version": "2026.01", "last_updated": "2026-01-17"},
  "brand": {"name": "Veye Media"},
  "assistant_policy": {"fallback_message": "Please use Start a Conversation to reach our team."},
  "systems_we_build": [{"name": "Growth Surfaces"}, {"name": "Media Intelligence"}],
  "faq": [{"q": "What is your pricing?", "a": "We don't publish fixed pricing."}],
  "handoff_rules": {
    "human_handoff_triggers": [{"name": "human", "match_any": ["real person"], "handoff_reason": "visitor_requested_human"}]
  }
}`

func writeKnowledge(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "knowledge.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestValidateCmd(t *testing.T) {
	path := writeKnowledge(t, knowledgeFixture)

	out, err := run(t, "validate", "--path", path)
	require.NoError(t, err)
	assert.Contains(t, out, "knowledge document OK")
	assert.Contains(t, out, "2026.01")
	assert.Contains(t, out, "systems:                2")
}

func TestValidateCmd_Invalid(t *testing.T) {
	path := writeKnowledge(t, `{"brand":{"name":"Veye Media"}}`)

	_, err := run(t, "validate", "--path", path)
	assert.Error(t, err)
}

func TestAskCmd(t *testing.T) {
	path := writeKnowledge(t, knowledgeFixture)

	out, err := run(t, "ask", "--path", path, "I want a", "real person")
	require.NoError(t, err)

	var got askResult
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.True(t, got.IsHandoff)
	assert.Equal(t, "visitor_requested_human", got.HandoffReason)
	assert.Equal(t, "/start-a-conversation", got.RedirectHref)
	assert.Equal(t, "handoff", got.Source)
}

func TestAdminCreateCmd_RequiresDatabase(t *testing.T) {
	t.Setenv("DB_ENABLED", "false")

	_, err := run(t, "admin", "create", "--email", "ops@veyemedia.co", "--password", "correct horse battery")
	assert.ErrorIs(t, err, errDatabaseDisabled)
}
