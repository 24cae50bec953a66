// Package registry holds the component declarations of one configuration.
//
// A Registry maps a process-unique label (e.g. "TrackerTFPProducerGP") to a
// Declaration: the compiled component type the host should instantiate and
// the parameter set configuring it. There is no process-wide singleton; each
// configuration build owns its own Registry and hands it to process assembly.
//
// Declaring performs no validation beyond label uniqueness and well-formed
// inputs. Checking parameters against a component's schema is a separate,
// explicit pass (ValidateSchemas).
package registry
