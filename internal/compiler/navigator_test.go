package compiler_test

import (
	"testing"

	"github.com/aretw0/kestrel/internal/compiler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColonDialect(t *testing.T) {
	nav := compiler.Parse("root:x=5:y=hello", false)

	assert.Equal(t, "root", nav.Root)
	assert.Equal(t, map[string]string{"x": "5", "y": "hello"}, nav.Params)
}

func TestParseColonValueEscape(t *testing.T) {
	// '~' inside a value decodes back to '=', so values may carry literal
	// equals signs. The '/' in the root does not flip the dialect because
	// the string contains ':'.
	nav := compiler.Parse("#/root:a=1~2", false)

	assert.Equal(t, "#/root", nav.Root)
	assert.Equal(t, "1=2", nav.Params["a"])
}

func TestParseColonMalformedPairs(t *testing.T) {
	// Tokens without '=' or with an empty key are dropped, not errors.
	nav := compiler.Parse("root:novalue:=orphan:k=v", false)

	assert.Equal(t, "root", nav.Root)
	assert.Equal(t, map[string]string{"k": "v"}, nav.Params)
}

func TestParseRootOnly(t *testing.T) {
	nav := compiler.Parse("#page", false)

	assert.Equal(t, "#page", nav.Root)
	assert.Empty(t, nav.Params)
}

func TestParsePathDialect(t *testing.T) {
	nav := compiler.Parse("#/page/seg1/seg2", false)

	assert.Equal(t, "#page", nav.Root)
	assert.Equal(t, map[string]string{"0": "seg1", "1": "seg2"}, nav.Params)
}

func TestParsePathDialectQuery(t *testing.T) {
	nav := compiler.Parse("#/page/pos~/k/v/k2/v2", false)

	assert.Equal(t, "#page", nav.Root)
	assert.Equal(t, map[string]string{
		"0":  "pos",
		"k":  "v",
		"k2": "v2",
	}, nav.Params)
}

func TestParsePathDialectBareRoot(t *testing.T) {
	// "#/missingroot" splits into ["#", "missingroot"], concatenating to
	// "#missingroot" with no parameters.
	nav := compiler.Parse("#/missingroot", false)

	assert.Equal(t, "#missingroot", nav.Root)
	assert.Empty(t, nav.Params)
}

func TestParseEscaped(t *testing.T) {
	// "_root.k.v" unescapes to "#root=k=v" before dialect dispatch; no ':'
	// and no '/' at index 1, so the whole string is the root.
	nav := compiler.Parse("_root.k.v", true)

	assert.Equal(t, "#root=k=v", nav.Root)
	assert.Empty(t, nav.Params)
}

func TestUnescape(t *testing.T) {
	assert.Equal(t, "#root=k=v", compiler.Unescape("_root.k.v"))
}

func TestEscapeIDRoundTrip(t *testing.T) {
	raw := "#flow:mode=fast"
	assert.Equal(t, raw, compiler.Unescape(compiler.EscapeID(raw)))
}

func TestEncodeRoundTrip(t *testing.T) {
	params := map[string]string{
		"a":    "1=2",
		"b":    "plain",
		"zarg": "x=y=z",
	}

	encoded := compiler.Encode("#flow", params)
	nav := compiler.Parse(encoded, false)

	require.Equal(t, "#flow", nav.Root)
	assert.Equal(t, params, nav.Params)
}

func TestEncodeDeterministic(t *testing.T) {
	params := map[string]string{"b": "2", "a": "1"}

	assert.Equal(t, "#flow:a=1:b=2", compiler.Encode("#flow", params))
}
