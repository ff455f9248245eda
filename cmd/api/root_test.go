package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_RegistersSubcommands(t *testing.T) {
	root := newRootCmd()
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "migrate", "reconcile", "seed"} {
		assert.True(t, names[want], want)
	}
}

func TestMigrateCmd_RejectsUnknownDirection(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"migrate", "sideways"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sideways")
}

func TestReconcileCmd_MemoryStoreHasNoDrift(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"reconcile"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "sin descuadres")
}

func TestSeedCmd_RequiresAFile(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"seed"})

	assert.Error(t, root.Execute())
}
