package foodweb

import (
	"fmt"
	"math"

	"github.com/san-kum/foodweb/internal/dynamo"
)

// Params is the full parameter set of the five-compartment web. A run holds
// its own copy; nothing here is shared between runs.
type Params struct {
	// Resource dynamics.
	RLitt     float64 `yaml:"r_litt" json:"r_litt"`
	RPel      float64 `yaml:"r_pel" json:"r_pel"`
	KLitt     float64 `yaml:"k_litt" json:"k_litt"`
	KPel      float64 `yaml:"k_pel" json:"k_pel"`
	AlphaPel  float64 `yaml:"alpha_pel" json:"alpha_pel"`
	AlphaLitt float64 `yaml:"alpha_litt" json:"alpha_litt"`

	// Consumer on resource.
	ACRLitt float64 `yaml:"a_cr_litt" json:"a_cr_litt"`
	ACRPel  float64 `yaml:"a_cr_pel" json:"a_cr_pel"`
	HCR     float64 `yaml:"h_cr" json:"h_cr"`
	ECR     float64 `yaml:"e_cr" json:"e_cr"`
	MC      float64 `yaml:"m_c" json:"m_c"`

	// Predator on resource and consumer.
	APRLitt float64 `yaml:"a_pr_litt" json:"a_pr_litt"`
	APRPel  float64 `yaml:"a_pr_pel" json:"a_pr_pel"`
	HPR     float64 `yaml:"h_pr" json:"h_pr"`
	HPC     float64 `yaml:"h_pc" json:"h_pc"`
	EPR     float64 `yaml:"e_pr" json:"e_pr"`
	EPC     float64 `yaml:"e_pc" json:"e_pc"`
	MP      float64 `yaml:"m_p" json:"m_p"`

	// Thermal response of the predator's attack on consumers.
	ATLitt   float64 `yaml:"at_litt" json:"at_litt"`
	ATPel    float64 `yaml:"at_pel" json:"at_pel"`
	ToptLitt float64 `yaml:"topt_litt" json:"topt_litt"`
	ToptPel  float64 `yaml:"topt_pel" json:"topt_pel"`
	TmaxLitt float64 `yaml:"tmax_litt" json:"tmax_litt"`
	TmaxPel  float64 `yaml:"tmax_pel" json:"tmax_pel"`
	Sigma    float64 `yaml:"sigma" json:"sigma"`
	T        float64 `yaml:"t" json:"t"`
}

var _ dynamo.Configurable = (*Params)(nil)

func DefaultParams() Params {
	return Params{
		RLitt:     1.0,
		RPel:      1.0,
		KLitt:     1.0,
		KPel:      1.0,
		AlphaPel:  0.5,
		AlphaLitt: 0.5,

		ACRLitt: 1.0,
		ACRPel:  1.0,
		HCR:     0.5,
		ECR:     0.8,
		MC:      0.2,

		APRLitt: 0.5,
		APRPel:  0.5,
		HPR:     0.5,
		HPC:     0.5,
		EPR:     0.8,
		EPC:     0.8,
		MP:      0.1,

		ATLitt:   3.0,
		ATPel:    7.0,
		ToptLitt: 32,
		ToptPel:  25,
		TmaxLitt: 40,
		TmaxPel:  32,
		Sigma:    6,
		T:        0,
	}
}

// WithTemperature returns a copy of p at ambient temperature t.
func (p Params) WithTemperature(t float64) Params {
	p.T = t
	return p
}

type field struct {
	name string
	ptr  *float64
}

// fields lists every parameter by its configuration name, in declaration order.
func (p *Params) fields() []field {
	return []field{
		{"r_litt", &p.RLitt}, {"r_pel", &p.RPel},
		{"k_litt", &p.KLitt}, {"k_pel", &p.KPel},
		{"alpha_pel", &p.AlphaPel}, {"alpha_litt", &p.AlphaLitt},
		{"a_cr_litt", &p.ACRLitt}, {"a_cr_pel", &p.ACRPel},
		{"h_cr", &p.HCR}, {"e_cr", &p.ECR}, {"m_c", &p.MC},
		{"a_pr_litt", &p.APRLitt}, {"a_pr_pel", &p.APRPel},
		{"h_pr", &p.HPR}, {"h_pc", &p.HPC},
		{"e_pr", &p.EPR}, {"e_pc", &p.EPC}, {"m_p", &p.MP},
		{"at_litt", &p.ATLitt}, {"at_pel", &p.ATPel},
		{"topt_litt", &p.ToptLitt}, {"topt_pel", &p.ToptPel},
		{"tmax_litt", &p.TmaxLitt}, {"tmax_pel", &p.TmaxPel},
		{"sigma", &p.Sigma}, {"t", &p.T},
	}
}

// Names returns the configuration names of all parameters.
func (p *Params) Names() []string {
	fs := p.fields()
	names := make([]string, len(fs))
	for i, f := range fs {
		names[i] = f.name
	}
	return names
}

func (p *Params) Get(name string) (float64, error) {
	for _, f := range p.fields() {
		if f.name == name {
			return *f.ptr, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", dynamo.ErrUnknownParam, name)
}

func (p *Params) Set(name string, value float64) error {
	for _, f := range p.fields() {
		if f.name == name {
			*f.ptr = value
			return nil
		}
	}
	return fmt.Errorf("%w: %s", dynamo.ErrUnknownParam, name)
}

// Map returns a name-keyed snapshot of the parameters.
func (p *Params) Map() map[string]float64 {
	fs := p.fields()
	m := make(map[string]float64, len(fs))
	for _, f := range fs {
		m[f.name] = *f.ptr
	}
	return m
}

// Validate rejects parameter sets for which the rate function is undefined by
// construction. Biologically odd but finite values (negative rates, Tmax on
// either side of Topt) pass.
func (p *Params) Validate() error {
	for _, f := range p.fields() {
		if math.IsNaN(*f.ptr) || math.IsInf(*f.ptr, 0) {
			return fmt.Errorf("%w: %s is not finite", dynamo.ErrParameterBounds, f.name)
		}
	}
	if p.Sigma <= 0 {
		return fmt.Errorf("%w: sigma must be positive, got %g", dynamo.ErrParameterBounds, p.Sigma)
	}
	if p.KLitt == 0 {
		return fmt.Errorf("%w: k_litt must be non-zero", dynamo.ErrParameterBounds)
	}
	if p.KPel == 0 {
		return fmt.Errorf("%w: k_pel must be non-zero", dynamo.ErrParameterBounds)
	}
	if p.ToptLitt == p.TmaxLitt {
		return fmt.Errorf("%w: topt_litt equals tmax_litt (%g)", dynamo.ErrParameterBounds, p.ToptLitt)
	}
	if p.ToptPel == p.TmaxPel {
		return fmt.Errorf("%w: topt_pel equals tmax_pel (%g)", dynamo.ErrParameterBounds, p.ToptPel)
	}
	return nil
}
