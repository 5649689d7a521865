package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONPath(t *testing.T) {
	body := []byte(`{"m2m:ae":{"ri":"CNoise","rn":"NoiseCancellationSystem","poa":["http://a"],"rr":true,"srv":["3","4"]}}`)

	out, err := ExtractJSONPath(body, map[string]string{
		"aeID": `$["m2m:ae"].ri`,
		"poa":  `$["m2m:ae"].poa`,
		"rr":   `$["m2m:ae"].rr`,
		"srv":  `$["m2m:ae"].srv`,
	})
	require.NoError(t, err)

	assert.Equal(t, "CNoise", out["aeID"])
	assert.Equal(t, "http://a", out["poa"])
	assert.Equal(t, "true", out["rr"])
	assert.Equal(t, `["3","4"]`, out["srv"])
}

func TestExtractJSONPath_PartialFailure(t *testing.T) {
	body := []byte(`{"m2m:cnt":{"ri":"cnt1","lbl":[]}}`)

	out, err := ExtractJSONPath(body, map[string]string{
		"ri":    `$["m2m:cnt"].ri`,
		"label": `$["m2m:cnt"].lbl`,
		"nope":  `$["m2m:cnt"].missing`,
	})
	require.Error(t, err)
	assert.Equal(t, map[string]string{"ri": "cnt1"}, out)
	assert.Contains(t, err.Error(), `"label"`)
	assert.Contains(t, err.Error(), `"nope"`)
}

func TestExtractJSONPath_NotJSON(t *testing.T) {
	_, err := ExtractJSONPath([]byte("<html>"), map[string]string{"x": "$.x"})
	assert.Error(t, err)
}

func TestExtractJSONPath_NoRules(t *testing.T) {
	out, err := ExtractJSONPath([]byte("not even json"), nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}
