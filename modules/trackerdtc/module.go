// Package trackerdtc declares the DTC stub producer that feeds the track
// finding processor chain.
package trackerdtc

import (
	"github.com/vk/psetgrid/internal/component"
	"github.com/vk/psetgrid/internal/pset"
	"github.com/vk/psetgrid/internal/registry"
)

// Label is the label the chain's producers expect in LabelDTC.
const Label = "TrackerDTCProducer"

// Params names the branches the DTC producer writes.
var Params = pset.MustDefine("TrackerDTCProducer_params",
	pset.Param("InputTag", pset.Tag(pset.MustInputTag("TTStubsFromPhase2TrackerDigis", "StubAccepted"))),
	pset.Param("BranchAccepted", pset.String("StubAccepted")),
	pset.Param("BranchLost", pset.String("StubLost")),
	pset.Param("CheckHistory", pset.Bool(false)),
)

type Module struct{}

func (m *Module) Name() string { return "trackerDTC" }

// Declare registers the DTC producer under Label.
func (m *Module) Declare(r *registry.Registry) error {
	_, err := r.Declare(Label, component.TrackerDTCProducer, Params)
	return err
}
