// Package stubassociator declares the producer that associates stubs with
// tracking particles.
package stubassociator

import (
	"github.com/vk/psetgrid/internal/component"
	"github.com/vk/psetgrid/internal/pset"
	"github.com/vk/psetgrid/internal/registry"
)

const Label = "StubAssociator"

// Params is the revision that refers to inputs through input tags. It is
// the one the component currently reads.
var Params = pset.MustDefine("StubAssociator_params",
	pset.Param("InputTagTTStubDetSetVec", pset.Tag(pset.MustInputTag("TTStubsFromPhase2TrackerDigis", "StubAccepted"))),
	pset.Param("InputTagTTClusterAssMap", pset.Tag(pset.MustInputTag("TTClusterAssociatorFromPixelDigis", "ClusterAccepted"))),
	pset.Param("BranchReconstructable", pset.String("Reconstructable")),
	pset.Param("BranchSelection", pset.String("UseForAlgEff")),
)

// ParamsV2 is the revision that names inputs as separate label and branch
// strings.
var ParamsV2 = pset.MustDefine("StubAssociator_params",
	pset.Param("LabelTTStubs", pset.String("TTStubsFromPhase2TrackerDigis")),
	pset.Param("BranchTTStubs", pset.String("StubAccepted")),
	pset.Param("LabelTTClusterAss", pset.String("TTClusterAssociatorFromPixelDigis")),
	pset.Param("BranchTTClusterAss", pset.String("ClusterAccepted")),
	pset.Param("BranchReconstructable", pset.String("Reconstructable")),
	pset.Param("BranchSelection", pset.String("UseForAlgEff")),
)

type Module struct{}

func (m *Module) Name() string { return "stubAssociator" }

func (m *Module) Declare(r *registry.Registry) error {
	_, err := r.Declare(Label, component.StubAssociator, Params)
	return err
}
