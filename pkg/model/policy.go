package model

import (
	"encoding/json"
	"fmt"
	"slices"
)

// PolicyKind is the subtype of a policy. It decides which field of a realm,
// client application or resource refers to the policy.
type PolicyKind string

const (
	PolicyAccount          PolicyKind = "ACCOUNT"
	PolicyPassword         PolicyKind = "PASSWORD"
	PolicyPropagation      PolicyKind = "PROPAGATION"
	PolicyInbound          PolicyKind = "INBOUND"
	PolicyPush             PolicyKind = "PUSH"
	PolicyAuth             PolicyKind = "AUTH"
	PolicyAccess           PolicyKind = "ACCESS"
	PolicyAttrRelease      PolicyKind = "ATTR_RELEASE"
	PolicyTicketExpiration PolicyKind = "TICKET_EXPIRATION"
)

// DefaultConfType is the conf type of AUTH policies listing auth modules
const DefaultConfType = "default"

type Policy struct {
	ID   string     `gorm:"column:id;primaryKey"`
	Kind PolicyKind `gorm:"column:kind;index;not null"`
	Name string     `gorm:"column:name"`
	Conf string     `gorm:"column:conf;type:text"`
}

func (Policy) TableName() string {
	return "policies"
}

// AuthPolicyConf is the "default" AUTH policy configuration
type AuthPolicyConf struct {
	Type        string   `json:"type"`
	AuthModules []string `json:"authModules,omitempty"`
	TryAll      bool     `json:"tryAll,omitempty"`
}

// SetConf encodes conf as the policy configuration
func (p *Policy) SetConf(conf any) error {
	raw, err := json.Marshal(conf)
	if err != nil {
		return fmt.Errorf("encoding conf of policy %q: %w", p.ID, err)
	}
	p.Conf = string(raw)
	return nil
}

// ConfType returns the "type" member of the configuration, or "" when the
// policy has no configuration
func (p *Policy) ConfType() (string, error) {
	if p.Conf == "" {
		return "", nil
	}
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal([]byte(p.Conf), &head); err != nil {
		return "", fmt.Errorf("decoding conf of policy %q: %w", p.ID, err)
	}
	return head.Type, nil
}

// AuthModules returns the auth module keys listed by a default AUTH policy conf
func (p *Policy) AuthModules() ([]string, error) {
	if p.Conf == "" {
		return nil, nil
	}
	var conf AuthPolicyConf
	if err := json.Unmarshal([]byte(p.Conf), &conf); err != nil {
		return nil, fmt.Errorf("decoding conf of policy %q: %w", p.ID, err)
	}
	return conf.AuthModules, nil
}

// RemoveAuthModule drops key from the auth module list and reports whether the
// conf changed. Other members of the conf are kept as they are.
func (p *Policy) RemoveAuthModule(key string) (bool, error) {
	if p.Conf == "" {
		return false, nil
	}
	var conf map[string]json.RawMessage
	if err := json.Unmarshal([]byte(p.Conf), &conf); err != nil {
		return false, fmt.Errorf("decoding conf of policy %q: %w", p.ID, err)
	}
	raw, ok := conf["authModules"]
	if !ok {
		return false, nil
	}
	var modules []string
	if err := json.Unmarshal(raw, &modules); err != nil {
		return false, fmt.Errorf("decoding auth modules of policy %q: %w", p.ID, err)
	}
	kept := slices.DeleteFunc(slices.Clone(modules), func(m string) bool { return m == key })
	if len(kept) == len(modules) {
		return false, nil
	}

	encodedModules, err := json.Marshal(kept)
	if err != nil {
		return false, fmt.Errorf("encoding auth modules of policy %q: %w", p.ID, err)
	}
	conf["authModules"] = encodedModules
	encoded, err := json.Marshal(conf)
	if err != nil {
		return false, fmt.Errorf("encoding conf of policy %q: %w", p.ID, err)
	}
	p.Conf = string(encoded)
	return true, nil
}
