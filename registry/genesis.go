package registry

import (
	"errors"
	"fmt"
	"io"

	"github.com/ruteri/inventor-registry/interfaces"
	"gopkg.in/yaml.v3"
)

// ErrInvalidGenesis is returned for genesis documents that cannot be applied.
var ErrInvalidGenesis = errors.New("invalid genesis")

// Genesis describes the initial state of a registry.
//
//	admin: ST1PQHQKV0RJXZFY1DGX8MNSNYVE3VGZJSRTPGZGM
//	inventors:
//	  - identity: ST2CY5V39NHDPWSXMW9QDT3HC3GD6Q6XX4CFRK9AG
//	    name: John Doe
//	    credentials: PhD in Computer Science
//	    verified: true
type Genesis struct {
	Admin     string            `yaml:"admin"`
	Inventors []GenesisInventor `yaml:"inventors"`
}

// GenesisInventor is an inventor registered when the genesis is applied.
type GenesisInventor struct {
	Identity    string `yaml:"identity"`
	Name        string `yaml:"name"`
	Credentials string `yaml:"credentials"`
	Verified    bool   `yaml:"verified"`
}

// LoadGenesis decodes a YAML genesis document.
func LoadGenesis(r io.Reader) (*Genesis, error) {
	var g Genesis
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&g); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGenesis, err)
	}
	return &g, nil
}

// Apply builds a registry by replaying RegisterInventor and VerifyInventor for
// every listed inventor, so genesis records obey the same rules as any other.
// A duplicate identity fails the whole genesis.
func (g *Genesis) Apply(heights interfaces.HeightSource) (*Registry, error) {
	admin, err := interfaces.ParseIdentity(g.Admin)
	if err != nil {
		return nil, fmt.Errorf("%w: admin: %v", ErrInvalidGenesis, err)
	}

	r := New(admin, heights)
	for i, inv := range g.Inventors {
		identity, err := interfaces.ParseIdentity(inv.Identity)
		if err != nil {
			return nil, fmt.Errorf("%w: inventor %d: %v", ErrInvalidGenesis, i, err)
		}

		if err := r.RegisterInventor(identity, inv.Name, inv.Credentials); err != nil {
			return nil, fmt.Errorf("%w: inventor %d: %w", ErrInvalidGenesis, i, err)
		}

		if inv.Verified {
			if err := r.VerifyInventor(admin, identity); err != nil {
				return nil, fmt.Errorf("%w: inventor %d: %w", ErrInvalidGenesis, i, err)
			}
		}
	}
	return r, nil
}
