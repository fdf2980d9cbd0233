package privilege

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"diflabel/principal"
)

// DelegationPolicy is the on-disk description of a delegation graph: a
// root principal plus a flat list of grants (delegates_to edges); the
// root can speak for itself and for every principal reachable from it
// through the grants.
type DelegationPolicy struct {
	Root   string           `yaml:"root"`
	Grants []DelegationRule `yaml:"grants"`
}

// DelegationRule is a single delegates_to edge: From may delegate to To.
type DelegationRule struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// LoadDelegationPolicyYAML reads a delegation policy from path and
// returns a Privilege rooted at the policy's root principal, backed by a
// DatalogPrivilege with every grant applied.
func LoadDelegationPolicyYAML(path string) (Privilege, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Privilege{}, fmt.Errorf("privilege: reading delegation policy %s: %w", path, err)
	}

	var policy DelegationPolicy
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return Privilege{}, fmt.Errorf("privilege: parsing delegation policy %s: %w", path, err)
	}
	if policy.Root == "" {
		return Privilege{}, fmt.Errorf("privilege: delegation policy %s has no root", path)
	}

	dp, err := NewDatalogPrivilege()
	if err != nil {
		return Privilege{}, err
	}
	for _, grant := range policy.Grants {
		if err := dp.Grant(principal.Principal(grant.From), principal.Principal(grant.To)); err != nil {
			return Privilege{}, fmt.Errorf("privilege: applying grant %s -> %s: %w", grant.From, grant.To, err)
		}
	}
	return dp.AsPrivilege(principal.Principal(policy.Root)), nil
}
