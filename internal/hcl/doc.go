// Package hcl provides the HCL implementation of config.Loader and the HCL
// encoding of parameter records.
//
// Values are written as typed calls so that kinds survive a round trip:
//
//	pset "TrackerTFPProducer_params" {
//	  LabelDTC     = string("TrackerDTCProducer")
//	  CheckHistory = bool(true)
//	  RunTime      = double(2)
//	  Input        = input_tag("TTStubsFromPhase2TrackerDigis", "StubAccepted")
//	  FileNames    = untracked(vstring(["a.root"]))
//
//	  pset "SeedFilter" {
//	    WidthZ0 = int32(4)
//	  }
//	}
//
// Bare strings, booleans and lists of strings are accepted as shorthand for
// string(), bool() and vstring(). Bare numbers are rejected because the
// integer and floating point kinds cannot be told apart.
//
// Top-level pset and module blocks may list records to start from in the
// reserved "extends" attribute. Records are applied in order and the block's
// own parameters override them.
package hcl
