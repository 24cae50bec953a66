package trackertfp

import "github.com/vk/psetgrid/internal/pset"

// Labels under which the chain's components are declared. Each producer
// finds its upstream stage through one of these values.
const (
	LabelDTC        = "TrackerDTCProducer"
	LabelGP         = "TrackerTFPProducerGP"
	LabelHT         = "TrackerTFPProducerHT"
	LabelMHT        = "TrackerTFPProducerMHT"
	LabelLR         = "TrackerTFPProducerLR"
	LabelSF         = "TrackerTFPProducerSF"
	LabelSFout      = "TrackerTFPProducerSFout"
	LabelKFin       = "TrackerTFPProducerKFin"
	LabelKF         = "TrackerTFPProducerKF"
	LabelKFTTTracks = "TrackerTFPProducerKFTTTracks"

	LabelDataFormats  = "TrackTriggerDataFormats"
	LabelDemonstrator = "TrackerTFPDemonstrator"
)

// ProducerParams configures the producers from the geometric processor to
// linear regression.
var ProducerParams = pset.MustDefine("TrackerTFPProducer_params",
	pset.Param("LabelDTC", pset.String(LabelDTC)),
	pset.Param("LabelGP", pset.String(LabelGP)),
	pset.Param("LabelHT", pset.String(LabelHT)),
	pset.Param("LabelMHT", pset.String(LabelMHT)),
	pset.Param("LabelLR", pset.String(LabelLR)),
	pset.Param("BranchAccepted", pset.String("StubAccepted")), // branch for product with passed stubs
	pset.Param("BranchLost", pset.String("StubLost")),         // branch for product with lost stubs
	pset.Param("BranchTracks", pset.String("TrackAccepted")),  // branch for product with passed track information
	pset.Param("CheckHistory", pset.Bool(true)),               // input sample production must match the current process
	pset.Param("EnableTruncation", pset.Bool(true)),           // lost stubs are filled in BranchLost
)

// ProducerParamsV2 adds the seed filter and Kalman filter stages.
var ProducerParamsV2 = pset.Extend(ProducerParams,
	pset.Param("LabelSF", pset.String(LabelSF)),
	pset.Param("LabelSFout", pset.String(LabelSFout)),
	pset.Param("LabelKFin", pset.String(LabelKFin)),
	pset.Param("LabelKF", pset.String(LabelKF)),
)

// AnalyzerParams is combined with ProducerParams for every analyzer.
var AnalyzerParams = pset.MustDefine("TrackerTFPAnalyzer_params",
	pset.Param("UseMCTruth", pset.Bool(true)),
	pset.Param("InputTagReconstructable", pset.Tag(pset.MustInputTag("StubAssociator", "Reconstructable"))),
	pset.Param("InputTagSelection", pset.Tag(pset.MustInputTag("StubAssociator", "UseForAlgEff"))),
)

// DemonstratorParams compares emulator output against firmware simulation.
var DemonstratorParams = pset.MustDefine("TrackerTFPDemonstrator_params",
	pset.Param("LabelInput", pset.String(LabelMHT)),
	pset.Param("LabelOutput", pset.String(LabelLR)),
	pset.Param("BranchStubs", pset.String("StubAccepted")),
	pset.Param("BranchTracks", pset.String("TrackAccepted")),
	pset.Param("DirIPBB", pset.String("/heplnw039/tschuh/work/proj/lr/")),
	pset.Param("RunTime", pset.Double(2.0)),
)

// DataFormatsParams holds the bit widths used by the data format ES producer.
var DataFormatsParams = pset.MustDefine("TrackTriggerDataFormats_params",
	pset.Param("SeedFilter", pset.Nested(pset.MustDefine("SeedFilter",
		pset.Param("WidthZ0", pset.Int32(4)),
		pset.Param("WidthCot", pset.Int32(3)),
	))),
	pset.Param("DuplicateRemoval", pset.Nested(pset.MustDefine("DuplicateRemoval",
		pset.Param("WidthPhi0", pset.Int32(12)),
		pset.Param("WidthQoverPt", pset.Int32(15)),
		pset.Param("WidthCot", pset.Int32(16)),
		pset.Param("WidthZ0", pset.Int32(12)),
	))),
)
