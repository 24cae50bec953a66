package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/psetgrid/internal/component"
	"github.com/vk/psetgrid/internal/pset"
)

func TestValidate_ReportsEveryProblem(t *testing.T) {
	p := pset.MustDefine("TrackerTFPDemonstrator_params",
		pset.Param("LabelInput", pset.String("TrackerTFPProducerMHT")),
		pset.Param("LabelOutput", pset.String("TrackerTFPProducerLR")),
		pset.Param("BranchStubs", pset.String("StubAccepted")),
		pset.Param("BranchTracks", pset.String("TrackAccepted")),
		pset.Param("RunTime", pset.Int32(2)),
		pset.Param("Extra", pset.Bool(true)),
	)

	err := Demonstrator.Validate(p)
	require.ErrorIs(t, err, ErrSchemaViolation)
	assert.Contains(t, err.Error(), `missing required parameter "DirIPBB"`)
	assert.Contains(t, err.Error(), `parameter "RunTime" is int32, expected double`)
	assert.NotContains(t, err.Error(), "Extra")
}

func TestValidate_Nested(t *testing.T) {
	good := pset.MustDefine("TrackTriggerDataFormats_params",
		pset.Param("SeedFilter", pset.Nested(pset.MustDefine("",
			pset.Param("WidthZ0", pset.Int32(4)),
			pset.Param("WidthCot", pset.Int32(3)),
		))),
		pset.Param("DuplicateRemoval", pset.Nested(pset.MustDefine("",
			pset.Param("WidthPhi0", pset.Int32(12)),
			pset.Param("WidthQoverPt", pset.Int32(15)),
			pset.Param("WidthCot", pset.Int32(16)),
			pset.Param("WidthZ0", pset.Int32(12)),
		))),
	)
	require.NoError(t, DataFormats.Validate(good))

	bad := pset.Extend(good, pset.Param("SeedFilter", pset.Nested(pset.MustDefine("",
		pset.Param("WidthZ0", pset.Double(4)),
	))))
	err := DataFormats.Validate(bad)
	require.ErrorIs(t, err, ErrSchemaViolation)
	assert.Contains(t, err.Error(), `"SeedFilter.WidthZ0" is double`)
	assert.Contains(t, err.Error(), `"SeedFilter.WidthCot"`)
}

func TestValidate_VPSetElements(t *testing.T) {
	p := pset.MustDefine("photonMVAValueMapProducer",
		pset.Param("src", pset.Tag(pset.MustInputTag("slimmedPhotons", ""))),
		pset.Param("mvaConfigurations", pset.VPSet(
			pset.MustDefine("", pset.Param("mvaName", pset.String("A")), pset.Param("mvaTag", pset.String("V1"))),
			pset.MustDefine("", pset.Param("mvaName", pset.String("B"))),
		)),
	)
	err := PhotonMVA.Validate(p)
	require.ErrorIs(t, err, ErrSchemaViolation)
	assert.Contains(t, err.Error(), `"mvaConfigurations[1].mvaTag"`)
}

func TestMerge_LastSpecWins(t *testing.T) {
	a := &Schema{Fields: []FieldSpec{required("x", pset.KindInt32), required("y", pset.KindBool)}}
	b := &Schema{Fields: []FieldSpec{optional("x", pset.KindDouble), required("z", pset.KindString)}}

	m := Merge("m", 3, a, b)
	require.Len(t, m.Fields, 3)
	assert.Equal(t, "x", m.Fields[0].Key)
	assert.Equal(t, pset.KindDouble, m.Fields[0].Kind)
	assert.True(t, m.Fields[0].Optional)
	assert.Equal(t, 3, m.Revision)
}

func TestRevisions(t *testing.T) {
	revs := Revisions("StubAssociator_params")
	require.Len(t, revs, 2)
	assert.Equal(t, 1, revs[0].Revision)
	assert.Equal(t, 2, revs[1].Revision)

	s, err := Lookup("TrackerTFPProducer_params", 2)
	require.NoError(t, err)
	assert.Same(t, ProducerV2, s)

	_, err = Lookup("TrackerTFPProducer_params", 9)
	require.Error(t, err)
}

func TestProducerRevisionsDiffer(t *testing.T) {
	v1Only := pset.MustDefine("P",
		pset.Param("LabelDTC", pset.String("TrackerDTCProducer")),
		pset.Param("LabelGP", pset.String("TrackerTFPProducerGP")),
		pset.Param("LabelHT", pset.String("TrackerTFPProducerHT")),
		pset.Param("LabelMHT", pset.String("TrackerTFPProducerMHT")),
		pset.Param("LabelLR", pset.String("TrackerTFPProducerLR")),
		pset.Param("BranchAccepted", pset.String("StubAccepted")),
		pset.Param("BranchLost", pset.String("StubLost")),
		pset.Param("BranchTracks", pset.String("TrackAccepted")),
		pset.Param("CheckHistory", pset.Bool(true)),
		pset.Param("EnableTruncation", pset.Bool(true)),
	)
	require.NoError(t, ProducerV1.Validate(v1Only))
	require.ErrorIs(t, ProducerV2.Validate(v1Only), ErrSchemaViolation)
}

func TestForType(t *testing.T) {
	s, ok := ForType(component.TrackerTFPProducerGP)
	require.True(t, ok)
	assert.Same(t, ProducerV1, s)

	s, ok = ForType(component.TrackerTFPAnalyzerHT)
	require.True(t, ok)
	keys := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		keys = append(keys, f.Key)
	}
	assert.Contains(t, keys, "UseMCTruth")
	assert.Contains(t, keys, "EnableTruncation")

	_, ok = ForType(component.TrackerDTCProducer)
	assert.False(t, ok)
}
