package machine

import (
	"fmt"
	"strings"

	"github.com/dingusdev/dingusppc-sub001/intc"
)

// intcFactory builds the interrupt controller variant named by a
// machine's "model" config key. Grounded on config/configparser's
// RegisterModel map-of-constructors (file-grammar parsing dropped,
// see DESIGN.md; the map-of-constructors shape is kept verbatim).
type intcFactory func(cpu intc.CPUPin) intc.Controller

var intcModels = map[string]intcFactory{}

// RegisterIntc adds a named interrupt-controller constructor. Called
// from this package's init() for each variant SPEC_FULL.md names;
// exported so a future board family can add its own without editing
// this file.
func RegisterIntc(name string, fn intcFactory) {
	intcModels[strings.ToUpper(name)] = fn
}

func init() {
	RegisterIntc("grandcentral", func(cpu intc.CPUPin) intc.Controller { return intc.NewGrandCentral(cpu) })
	RegisterIntc("heathrow", func(cpu intc.CPUPin) intc.Controller { return intc.NewHeathrow(cpu) })
	RegisterIntc("amic", func(cpu intc.CPUPin) intc.Controller { return intc.NewAMIC(cpu) })
}

func buildIntc(model string, cpu intc.CPUPin) (intc.Controller, error) {
	fn, ok := intcModels[strings.ToUpper(model)]
	if !ok {
		return nil, fmt.Errorf("machine: unknown interrupt controller model %q", model)
	}
	return fn(cpu), nil
}
