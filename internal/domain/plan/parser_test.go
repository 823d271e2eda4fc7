package plan

import (
	"testing"

	"lnlfit/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON_Direct(t *testing.T) {
	content := `{"overview":"a simple plan","tips":["drink water"]}`

	got, err := ExtractJSON(content)
	require.NoError(t, err)
	assert.JSONEq(t, content, string(got))
}

func TestExtractJSON_FencedRoundTrip(t *testing.T) {
	// The same payload parses identically whether fenced or unwrapped.
	payload := `{"overview":"cutting plan","dailyTargets":{"calories":1800}}`

	direct, err := ExtractJSON(payload)
	require.NoError(t, err)

	fenced, err := ExtractJSON("```json\n" + payload + "\n```")
	require.NoError(t, err)

	assert.JSONEq(t, string(direct), string(fenced))
}

func TestExtractJSON_FencedWithoutLanguageTag(t *testing.T) {
	got, err := ExtractJSON("Here you go:\n```\n{\"tips\":[]}\n```")
	require.NoError(t, err)
	assert.JSONEq(t, `{"tips":[]}`, string(got))
}

func TestExtractJSON_LeadingProse(t *testing.T) {
	content := "Sure! Here is the plan:\n```json\n{\"overview\":\"ok\"}\n```\nEnjoy!"

	got, err := ExtractJSON(content)
	require.NoError(t, err)
	assert.JSONEq(t, `{"overview":"ok"}`, string(got))
}

func TestExtractJSON_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "plain prose", content: "I could not generate a plan today."},
		{name: "truncated json", content: `{"overview":"cut off`},
		{name: "fenced garbage", content: "```json\nnot json at all\n```"},
		{name: "empty", content: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractJSON(tt.content)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrGenerationParse))
		})
	}
}
