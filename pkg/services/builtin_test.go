package services_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/aretw0/kestrel"
	"github.com/aretw0/kestrel/pkg/domain"
	"github.com/aretw0/kestrel/pkg/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltins(t *testing.T) {
	var out bytes.Buffer

	k := kestrel.New()
	services.RegisterBuiltins(k.Registry(), &out)

	wf := domain.Workflow{
		{
			Service: "core.set",
			Params:  map[string]any{"value": "pending"},
			Output:  map[string]string{"value": "order_status"},
		},
		{
			Service: "core.echo",
			Input:   map[string]string{"text": "order_status"},
		},
		{Service: "core.fail"},
		{
			Service:   "core.echo",
			Params:    map[string]any{"text": "cleanup"},
			Nonstrict: true,
		},
		{
			Service: "core.echo",
			Params:  map[string]any{"text": "unreachable"},
		},
	}

	mem, err := k.Execute(context.Background(), wf, nil)
	require.NoError(t, err)

	assert.False(t, mem.Valid())
	assert.Equal(t, "pending", mem["order_status"])
	assert.Equal(t, "pending\ncleanup\n", out.String(), "strict steps after the failure must not print")
}
