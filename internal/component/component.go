// Package component enumerates the compiled components of the host framework
// that a declaration may refer to.
//
// The host resolves components by an opaque identifier string such as
// "trackerTFP::ProducerGP". Here those identifiers form a closed set: parsing
// an identifier that is not listed fails at configuration-build time instead
// of when the host looks up its plugin registry.
package component

import (
	"errors"
	"fmt"
)

// ErrUnknownType is returned when an identifier does not name a known component.
var ErrUnknownType = errors.New("unknown component type")

// Kind is the host framework role of a component.
type Kind int

const (
	EDProducer Kind = iota + 1
	EDAnalyzer
	ESProducer
	Source
	Service
)

func (k Kind) String() string {
	switch k {
	case EDProducer:
		return "EDProducer"
	case EDAnalyzer:
		return "EDAnalyzer"
	case ESProducer:
		return "ESProducer"
	case Source:
		return "Source"
	case Service:
		return "Service"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Type is a known compiled component.
type Type int

const (
	Invalid Type = iota
	TrackerDTCProducer
	TrackerTFPProducerES
	TrackerTFPProducerGP
	TrackerTFPProducerHT
	TrackerTFPProducerMHT
	TrackerTFPProducerLR
	TrackerTFPProducerSF
	TrackerTFPProducerSFout
	TrackerTFPProducerKFin
	TrackerTFPProducerKF
	TrackerTFPProducerKFTTTracks
	TrackerTFPAnalyzerGP
	TrackerTFPAnalyzerHT
	TrackerTFPAnalyzerMHT
	TrackerTFPAnalyzerLR
	TrackerTFPDemonstrator
	StubAssociator
	PhotonMVAValueMapProducer
	PoolSource
	Timing
)

// Consumption names the parameter keys through which a component refers to
// one upstream product: LabelKey holds the producer label and BranchKey the
// branch label.
type Consumption struct {
	LabelKey  string
	BranchKey string
}

type typeInfo struct {
	id       string
	kind     Kind
	consumes []Consumption
}

var types = map[Type]typeInfo{
	TrackerDTCProducer:           {id: "trackerDTC::ProducerED", kind: EDProducer},
	TrackerTFPProducerES:         {id: "trackerTFP::ProducerES", kind: ESProducer},
	TrackerTFPProducerGP:         {id: "trackerTFP::ProducerGP", kind: EDProducer, consumes: []Consumption{{"LabelDTC", "BranchAccepted"}}},
	TrackerTFPProducerHT:         {id: "trackerTFP::ProducerHT", kind: EDProducer, consumes: []Consumption{{"LabelGP", "BranchAccepted"}}},
	TrackerTFPProducerMHT:        {id: "trackerTFP::ProducerMHT", kind: EDProducer, consumes: []Consumption{{"LabelHT", "BranchAccepted"}}},
	TrackerTFPProducerLR:         {id: "trackerTFP::ProducerLR", kind: EDProducer, consumes: []Consumption{{"LabelMHT", "BranchAccepted"}}},
	TrackerTFPProducerSF:         {id: "trackerTFP::ProducerSF", kind: EDProducer, consumes: []Consumption{{"LabelMHT", "BranchAccepted"}}},
	TrackerTFPProducerSFout:      {id: "trackerTFP::ProducerSFout", kind: EDProducer, consumes: []Consumption{{"LabelSF", "BranchAccepted"}}},
	TrackerTFPProducerKFin:       {id: "trackerTFP::ProducerKFin", kind: EDProducer, consumes: []Consumption{{"LabelSFout", "BranchTracks"}, {"LabelSF", "BranchAccepted"}}},
	TrackerTFPProducerKF:         {id: "trackerTFP::ProducerKF", kind: EDProducer, consumes: []Consumption{{"LabelKFin", "BranchAccepted"}}},
	TrackerTFPProducerKFTTTracks: {id: "trackerTFP::ProducerKFTTTracks", kind: EDProducer, consumes: []Consumption{{"LabelKF", "BranchAccepted"}}},
	TrackerTFPAnalyzerGP:         {id: "trackerTFP::AnalyzerGP", kind: EDAnalyzer, consumes: []Consumption{{"LabelGP", "BranchAccepted"}}},
	TrackerTFPAnalyzerHT:         {id: "trackerTFP::AnalyzerHT", kind: EDAnalyzer, consumes: []Consumption{{"LabelHT", "BranchAccepted"}}},
	TrackerTFPAnalyzerMHT:        {id: "trackerTFP::AnalyzerMHT", kind: EDAnalyzer, consumes: []Consumption{{"LabelMHT", "BranchAccepted"}}},
	TrackerTFPAnalyzerLR:         {id: "trackerTFP::AnalyzerLR", kind: EDAnalyzer, consumes: []Consumption{{"LabelLR", "BranchAccepted"}}},
	TrackerTFPDemonstrator:       {id: "trackerTFP::Demonstrator", kind: EDAnalyzer, consumes: []Consumption{{"LabelInput", "BranchStubs"}, {"LabelOutput", "BranchStubs"}}},
	StubAssociator:               {id: "tt::StubAssociator", kind: EDProducer},
	PhotonMVAValueMapProducer:    {id: "PhotonMVAValueMapProducer", kind: EDProducer},
	PoolSource:                   {id: "PoolSource", kind: Source},
	Timing:                       {id: "Timing", kind: Service},
}

var byIdentifier = func() map[string]Type {
	m := make(map[string]Type, len(types))
	for t, info := range types {
		m[info.id] = t
	}
	return m
}()

// Parse resolves a host identifier such as "trackerTFP::ProducerGP".
func Parse(identifier string) (Type, error) {
	if t, ok := byIdentifier[identifier]; ok {
		return t, nil
	}
	return Invalid, fmt.Errorf("%w: %q", ErrUnknownType, identifier)
}

// All returns every known type in declaration order.
func All() []Type {
	out := make([]Type, 0, len(types))
	for t := TrackerDTCProducer; t <= Timing; t++ {
		out = append(out, t)
	}
	return out
}

// Valid reports whether t is a known type.
func (t Type) Valid() bool {
	_, ok := types[t]
	return ok
}

// String returns the host identifier of the type.
func (t Type) String() string {
	if info, ok := types[t]; ok {
		return info.id
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Kind returns the host role of the type.
func (t Type) Kind() Kind {
	return types[t].kind
}

// Consumes lists the parameter keys through which the type names its
// upstream producers.
func (t Type) Consumes() []Consumption {
	return append([]Consumption(nil), types[t].consumes...)
}
