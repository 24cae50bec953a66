package schema

import (
	"fmt"

	"github.com/vk/psetgrid/internal/component"
	"github.com/vk/psetgrid/internal/pset"
)

func required(key string, kind pset.Kind) FieldSpec {
	return FieldSpec{Key: key, Kind: kind}
}

func optional(key string, kind pset.Kind) FieldSpec {
	return FieldSpec{Key: key, Kind: kind, Optional: true}
}

var (
	// ProducerV1 covers the geometric processor through linear regression.
	ProducerV1 = &Schema{
		Name:     "TrackerTFPProducer_params",
		Revision: 1,
		Fields: []FieldSpec{
			required("LabelDTC", pset.KindString),
			required("LabelGP", pset.KindString),
			required("LabelHT", pset.KindString),
			required("LabelMHT", pset.KindString),
			required("LabelLR", pset.KindString),
			required("BranchAccepted", pset.KindString),
			required("BranchLost", pset.KindString),
			required("BranchTracks", pset.KindString),
			required("CheckHistory", pset.KindBool),
			required("EnableTruncation", pset.KindBool),
		},
	}

	// ProducerV2 extends the chain with seed filter and Kalman filter labels.
	ProducerV2 = Merge("TrackerTFPProducer_params", 2, ProducerV1, &Schema{
		Fields: []FieldSpec{
			required("LabelSF", pset.KindString),
			required("LabelSFout", pset.KindString),
			required("LabelKFin", pset.KindString),
			required("LabelKF", pset.KindString),
		},
	})

	Analyzer = &Schema{
		Name:     "TrackerTFPAnalyzer_params",
		Revision: 1,
		Fields: []FieldSpec{
			required("UseMCTruth", pset.KindBool),
			required("InputTagReconstructable", pset.KindInputTag),
			required("InputTagSelection", pset.KindInputTag),
		},
	}

	Demonstrator = &Schema{
		Name:     "TrackerTFPDemonstrator_params",
		Revision: 1,
		Fields: []FieldSpec{
			required("LabelInput", pset.KindString),
			required("LabelOutput", pset.KindString),
			required("BranchStubs", pset.KindString),
			required("BranchTracks", pset.KindString),
			required("DirIPBB", pset.KindString),
			required("RunTime", pset.KindDouble),
		},
	}

	DataFormats = &Schema{
		Name:     "TrackTriggerDataFormats_params",
		Revision: 1,
		Fields: []FieldSpec{
			{Key: "SeedFilter", Kind: pset.KindPSet, Nested: &Schema{
				Name:     "SeedFilter",
				Revision: 1,
				Fields: []FieldSpec{
					required("WidthZ0", pset.KindInt32),
					required("WidthCot", pset.KindInt32),
				},
			}},
			{Key: "DuplicateRemoval", Kind: pset.KindPSet, Nested: &Schema{
				Name:     "DuplicateRemoval",
				Revision: 1,
				Fields: []FieldSpec{
					required("WidthPhi0", pset.KindInt32),
					required("WidthQoverPt", pset.KindInt32),
					required("WidthCot", pset.KindInt32),
					required("WidthZ0", pset.KindInt32),
				},
			}},
		},
	}

	// StubAssociatorV1 refers to its inputs through input tags.
	StubAssociatorV1 = &Schema{
		Name:     "StubAssociator_params",
		Revision: 1,
		Fields: []FieldSpec{
			required("InputTagTTStubDetSetVec", pset.KindInputTag),
			required("InputTagTTClusterAssMap", pset.KindInputTag),
			required("BranchReconstructable", pset.KindString),
			required("BranchSelection", pset.KindString),
		},
	}

	// StubAssociatorV2 names its inputs as separate label/branch strings.
	StubAssociatorV2 = &Schema{
		Name:     "StubAssociator_params",
		Revision: 2,
		Fields: []FieldSpec{
			required("LabelTTStubs", pset.KindString),
			required("BranchTTStubs", pset.KindString),
			required("LabelTTClusterAss", pset.KindString),
			required("BranchTTClusterAss", pset.KindString),
			required("BranchReconstructable", pset.KindString),
			required("BranchSelection", pset.KindString),
		},
	}

	PhotonMVA = &Schema{
		Name:     "photonMVAValueMapProducer",
		Revision: 1,
		Fields: []FieldSpec{
			required("src", pset.KindInputTag),
			{Key: "mvaConfigurations", Kind: pset.KindVPSet, Nested: &Schema{
				Name:     "mvaConfiguration",
				Revision: 1,
				Fields: []FieldSpec{
					required("mvaName", pset.KindString),
					required("mvaTag", pset.KindString),
					optional("weightFileNames", pset.KindStrings),
				},
			}},
		},
	}

	PoolSource = &Schema{
		Name:     "PoolSource",
		Revision: 1,
		Fields: []FieldSpec{
			required("fileNames", pset.KindStrings),
			optional("secondaryFileNames", pset.KindStrings),
			optional("duplicateCheckMode", pset.KindString),
			optional("skipEvents", pset.KindUint32),
		},
	}

	Timing = &Schema{
		Name:     "Timing",
		Revision: 1,
		Fields: []FieldSpec{
			optional("summaryOnly", pset.KindBool),
		},
	}

	analyzerV1 = Merge("TrackerTFPAnalyzer", 1, Analyzer, ProducerV1)
)

var byName = map[string][]*Schema{}

func init() {
	for _, s := range []*Schema{ProducerV1, ProducerV2, Analyzer, Demonstrator, DataFormats, StubAssociatorV1, StubAssociatorV2, PhotonMVA, PoolSource, Timing} {
		byName[s.Name] = append(byName[s.Name], s)
	}
}

// Lookup returns a registered schema by name and revision.
func Lookup(name string, revision int) (*Schema, error) {
	for _, s := range byName[name] {
		if s.Revision == revision {
			return s, nil
		}
	}
	return nil, fmt.Errorf("no schema %q revision %d", name, revision)
}

// Revisions returns every registered revision of a schema, oldest first.
func Revisions(name string) []*Schema {
	return append([]*Schema(nil), byName[name]...)
}

// ForType returns the schema a component type is validated against. Types
// whose parameters are outside this fragment report false.
func ForType(t component.Type) (*Schema, bool) {
	switch t {
	case component.TrackerTFPProducerGP, component.TrackerTFPProducerHT,
		component.TrackerTFPProducerMHT, component.TrackerTFPProducerLR:
		return ProducerV1, true
	case component.TrackerTFPProducerSF, component.TrackerTFPProducerSFout,
		component.TrackerTFPProducerKFin, component.TrackerTFPProducerKF,
		component.TrackerTFPProducerKFTTTracks:
		return ProducerV2, true
	case component.TrackerTFPAnalyzerGP, component.TrackerTFPAnalyzerHT,
		component.TrackerTFPAnalyzerMHT, component.TrackerTFPAnalyzerLR:
		return analyzerV1, true
	case component.TrackerTFPDemonstrator:
		return Demonstrator, true
	case component.TrackerTFPProducerES:
		return DataFormats, true
	case component.StubAssociator:
		return StubAssociatorV1, true
	case component.PhotonMVAValueMapProducer:
		return PhotonMVA, true
	case component.PoolSource:
		return PoolSource, true
	case component.Timing:
		return Timing, true
	default:
		return nil, false
	}
}
