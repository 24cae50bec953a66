// Package trackertfp declares the track finding processor chain: its
// producers, analyzers, demonstrator and data format ES producer.
package trackertfp

import (
	"errors"

	"github.com/vk/psetgrid/internal/component"
	"github.com/vk/psetgrid/internal/pset"
	"github.com/vk/psetgrid/internal/registry"
)

// Module declares the whole chain.
type Module struct{}

// Name returns the module name used in logs.
func (m *Module) Name() string { return "trackerTFP" }

// Declare registers every component of the chain.
func (m *Module) Declare(r *registry.Registry) error {
	return errors.Join(
		DeclareDataFormats(r),
		DeclareProducers(r),
		DeclareAnalyzers(r),
		DeclareDemonstrator(r),
	)
}

type entry struct {
	label string
	typ   component.Type
}

var producersV1 = []entry{
	{LabelGP, component.TrackerTFPProducerGP},
	{LabelHT, component.TrackerTFPProducerHT},
	{LabelMHT, component.TrackerTFPProducerMHT},
	{LabelLR, component.TrackerTFPProducerLR},
}

var producersV2 = []entry{
	{LabelSF, component.TrackerTFPProducerSF},
	{LabelSFout, component.TrackerTFPProducerSFout},
	{LabelKFin, component.TrackerTFPProducerKFin},
	{LabelKF, component.TrackerTFPProducerKF},
	{LabelKFTTTracks, component.TrackerTFPProducerKFTTTracks},
}

var analyzers = []entry{
	{"TrackerTFPAnalyzerGP", component.TrackerTFPAnalyzerGP},
	{"TrackerTFPAnalyzerHT", component.TrackerTFPAnalyzerHT},
	{"TrackerTFPAnalyzerMHT", component.TrackerTFPAnalyzerMHT},
	{"TrackerTFPAnalyzerLR", component.TrackerTFPAnalyzerLR},
}

// DeclareProducerGP declares only the geometric processor, as the test
// harness does.
func DeclareProducerGP(r *registry.Registry) error {
	_, err := r.Declare(LabelGP, component.TrackerTFPProducerGP, ProducerParams)
	return err
}

// DeclareProducers declares every producer. All of them share one record
// per revision.
func DeclareProducers(r *registry.Registry) error {
	var errs []error
	for _, e := range producersV1 {
		if _, err := r.Declare(e.label, e.typ, ProducerParams); err != nil {
			errs = append(errs, err)
		}
	}
	for _, e := range producersV2 {
		if _, err := r.Declare(e.label, e.typ, ProducerParamsV2); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// DeclareAnalyzers declares one analyzer per stage, each configured by the
// analyzer record merged with the producer record.
func DeclareAnalyzers(r *registry.Registry) error {
	var errs []error
	for _, e := range analyzers {
		params := pset.Compose(e.label, AnalyzerParams, ProducerParams)
		if _, err := r.Declare(e.label, e.typ, params); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func DeclareDemonstrator(r *registry.Registry) error {
	_, err := r.Declare(LabelDemonstrator, component.TrackerTFPDemonstrator, DemonstratorParams)
	return err
}

func DeclareDataFormats(r *registry.Registry) error {
	_, err := r.Declare(LabelDataFormats, component.TrackerTFPProducerES, DataFormatsParams)
	return err
}
