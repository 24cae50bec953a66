package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/psetgrid/internal/component"
	"github.com/vk/psetgrid/internal/ctxlog"
	"github.com/vk/psetgrid/internal/pset"
	"github.com/vk/psetgrid/internal/schema"
)

func producerParams() *pset.PSet {
	return pset.MustDefine("TrackerTFPProducer_params",
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
}

func TestDeclare(t *testing.T) {
	params := producerParams()

	testCases := []struct {
		name      string
		label     string
		typ       component.Type
		params    *pset.PSet
		expectErr error
	}{
		{name: "valid", label: "GP1", typ: component.TrackerTFPProducerGP, params: params},
		{name: "empty label", label: "", typ: component.TrackerTFPProducerGP, params: params, expectErr: ErrInvalidLabel},
		{name: "label with space", label: "GP 1", typ: component.TrackerTFPProducerGP, params: params, expectErr: ErrInvalidLabel},
		{name: "label with colon", label: "a:b", typ: component.TrackerTFPProducerGP, params: params, expectErr: ErrInvalidLabel},
		{name: "unknown type", label: "X", typ: component.Invalid, params: params, expectErr: ErrInvalidDeclaration},
		{name: "nil params", label: "X", typ: component.TrackerTFPProducerGP, expectErr: ErrInvalidDeclaration},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := New()
			decl, err := r.Declare(tc.label, tc.typ, tc.params)
			if tc.expectErr != nil {
				require.ErrorIs(t, err, tc.expectErr)
				assert.Nil(t, decl)
				assert.Zero(t, r.Len())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.label, decl.Label)
			assert.Equal(t, tc.typ, decl.Type)
			assert.Same(t, tc.params, decl.Params)
		})
	}
}

func TestDeclare_SharedParamsAndDuplicateLabel(t *testing.T) {
	r := New()
	params := producerParams()

	gp1, err := r.Declare("GP1", component.TrackerTFPProducerGP, params)
	require.NoError(t, err)
	gp2, err := r.Declare("GP2", component.TrackerTFPProducerGP, params)
	require.NoError(t, err)
	assert.Same(t, gp1.Params, gp2.Params)

	_, err = r.Declare("GP1", component.TrackerTFPProducerHT, params)
	require.ErrorIs(t, err, ErrDuplicateLabel)

	got, ok := r.Get("GP1")
	require.True(t, ok)
	assert.Equal(t, component.TrackerTFPProducerGP, got.Type, "first declaration is kept")
	assert.Equal(t, []string{"GP1", "GP2"}, r.Labels())
}

func TestDeclareByName(t *testing.T) {
	r := New()

	decl, err := r.DeclareByName("TrackerTFPProducerGP", "trackerTFP::ProducerGP", producerParams())
	require.NoError(t, err)
	assert.Equal(t, component.TrackerTFPProducerGP, decl.Type)

	_, err = r.DeclareByName("Bogus", "trackerTFP::ProducerXYZ", producerParams())
	require.ErrorIs(t, err, component.ErrUnknownType)
}

func TestMustDeclare_Panics(t *testing.T) {
	r := New()
	r.MustDeclare("GP", component.TrackerTFPProducerGP, producerParams())
	assert.Panics(t, func() {
		r.MustDeclare("GP", component.TrackerTFPProducerGP, producerParams())
	})
}

func TestAll_DeclarationOrder(t *testing.T) {
	r := New()
	for _, label := range []string{"Zeta", "Alpha", "Mid"} {
		r.MustDeclare(label, component.Timing, pset.MustDefine(label))
	}

	var got []string
	for _, d := range r.All() {
		got = append(got, d.Label)
	}
	assert.Equal(t, []string{"Zeta", "Alpha", "Mid"}, got)

	labels := r.Labels()
	labels[0] = "mutated"
	assert.Equal(t, "Zeta", r.Labels()[0])
}

func TestValidateSchemas(t *testing.T) {
	ctx := ctxlog.Discard(context.Background())

	t.Run("valid", func(t *testing.T) {
		r := New()
		r.MustDeclare("TrackerTFPProducerGP", component.TrackerTFPProducerGP, producerParams())
		r.MustDeclare("TrackerDTCProducer", component.TrackerDTCProducer, pset.MustDefine("dtc"))
		require.NoError(t, r.ValidateSchemas(ctx, nil))
	})

	t.Run("reports every failing declaration", func(t *testing.T) {
		r := New()
		broken := pset.Extend(producerParams(), pset.Param("CheckHistory", pset.String("yes")))
		r.MustDeclare("GP", component.TrackerTFPProducerGP, broken)
		r.MustDeclare("Timer", component.Timing, pset.MustDefine("Timing", pset.Param("summaryOnly", pset.Int32(1))))

		err := r.ValidateSchemas(ctx, nil)
		require.ErrorIs(t, err, schema.ErrSchemaViolation)
		assert.Contains(t, err.Error(), `declaration "GP"`)
		assert.Contains(t, err.Error(), `declaration "Timer"`)
	})

	t.Run("custom resolver", func(t *testing.T) {
		r := New()
		r.MustDeclare("GP", component.TrackerTFPProducerGP, producerParams())
		err := r.ValidateSchemas(ctx, func(*Declaration) (*schema.Schema, bool) {
			return schema.ProducerV2, true
		})
		require.ErrorIs(t, err, schema.ErrSchemaViolation)
		assert.Contains(t, err.Error(), "LabelKF")
	})
}
