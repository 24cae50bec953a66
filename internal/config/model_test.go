package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/psetgrid/internal/pset"
)

func TestModel_PSet(t *testing.T) {
	m := &Model{PSets: []*pset.PSet{pset.MustDefine("A"), pset.MustDefine("B")}}

	got, ok := m.PSet("B")
	require.True(t, ok)
	assert.Equal(t, "B", got.Name())

	_, ok = m.PSet("C")
	assert.False(t, ok)
}

func TestModel_Merge(t *testing.T) {
	a := &Model{
		Modules: []*Module{{Label: "dtc"}},
		Process: &Process{Name: "Demo"},
	}
	b := &Model{
		PSets: []*pset.PSet{pset.MustDefine("P")},
		Paths: []*Path{{Name: "gp"}},
	}

	require.NoError(t, a.Merge(b))
	require.NoError(t, a.Merge(nil))
	assert.Len(t, a.PSets, 1)
	assert.Len(t, a.Modules, 1)
	assert.Len(t, a.Paths, 1)
	assert.Equal(t, "Demo", a.Process.Name)

	err := a.Merge(&Model{Process: &Process{Name: "Other"}})
	assert.ErrorContains(t, err, `process "Demo" already defined`)
}
