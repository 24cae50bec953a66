package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		identifier string
		expected   Type
		kind       Kind
	}{
		{"trackerTFP::ProducerGP", TrackerTFPProducerGP, EDProducer},
		{"trackerTFP::AnalyzerHT", TrackerTFPAnalyzerHT, EDAnalyzer},
		{"trackerTFP::Demonstrator", TrackerTFPDemonstrator, EDAnalyzer},
		{"trackerTFP::ProducerES", TrackerTFPProducerES, ESProducer},
		{"PhotonMVAValueMapProducer", PhotonMVAValueMapProducer, EDProducer},
		{"PoolSource", PoolSource, Source},
		{"Timing", Timing, Service},
	}

	for _, tc := range testCases {
		t.Run(tc.identifier, func(t *testing.T) {
			typ, err := Parse(tc.identifier)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, typ)
			assert.Equal(t, tc.kind, typ.Kind())
			assert.Equal(t, tc.identifier, typ.String())
		})
	}
}

func TestParse_Unknown(t *testing.T) {
	for _, id := range []string{"", "trackerTFP::ProducerXYZ", "producergp"} {
		_, err := Parse(id)
		require.ErrorIs(t, err, ErrUnknownType)
	}
}

func TestAll_RoundTrips(t *testing.T) {
	all := All()
	require.Len(t, all, len(types))
	for _, typ := range all {
		assert.True(t, typ.Valid())
		parsed, err := Parse(typ.String())
		require.NoError(t, err)
		assert.Equal(t, typ, parsed)
	}
	assert.False(t, Invalid.Valid())
}

func TestConsumes(t *testing.T) {
	assert.Equal(t, []Consumption{{LabelKey: "LabelDTC", BranchKey: "BranchAccepted"}}, TrackerTFPProducerGP.Consumes())
	assert.Empty(t, TrackerDTCProducer.Consumes())

	c := TrackerTFPProducerHT.Consumes()
	c[0].LabelKey = "mutated"
	assert.Equal(t, "LabelGP", TrackerTFPProducerHT.Consumes()[0].LabelKey)
}
