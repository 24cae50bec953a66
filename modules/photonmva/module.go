// Package photonmva declares the photon identification MVA value map
// producer.
package photonmva

import (
	"github.com/vk/psetgrid/internal/component"
	"github.com/vk/psetgrid/internal/pset"
	"github.com/vk/psetgrid/internal/registry"
)

const Label = "photonMVAValueMapProducer"

func mvaConfig(name, tag string) *pset.PSet {
	return pset.MustDefine("",
		pset.Param("mvaName", pset.String(name)),
		pset.Param("mvaTag", pset.String(tag)),
	)
}

// Configs lists the MVAs evaluated by the producer, in evaluation order.
var Configs = []*pset.PSet{
	mvaConfig("PhotonMVAEstimatorRun2Spring16NonTrig", "V1"),
	mvaConfig("PhotonMVAEstimator", "RunIIFall17v1p1"),
	mvaConfig("PhotonMVAEstimator", "RunIIFall17v2"),
}

var Params = pset.MustDefine(Label,
	pset.Param("src", pset.Tag(pset.MustInputTag("slimmedPhotons", ""))),
	pset.Param("mvaConfigurations", pset.VPSet(Configs...)),
)

type Module struct{}

func (m *Module) Name() string { return "photonMVA" }

func (m *Module) Declare(r *registry.Registry) error {
	_, err := r.Declare(Label, component.PhotonMVAValueMapProducer, Params)
	return err
}
