package output

import (
	"gopkg.in/yaml.v3"
)

type (
	Model struct {
		NetworkID uint64                    `yaml:"network-id"`
		Contracts map[string]ContractConfig `yaml:"contracts"`
	}

	ContractConfig struct {
		Address string             `yaml:"address"`
		ABI     SingleQuotedString `yaml:"abi,omitempty"`
		Aux     map[string]string  `yaml:"aux,omitempty"`
	}

	SingleQuotedString string
)

func (s SingleQuotedString) MarshalYAML() (any, error) {
	node := &yaml.Node{
		Kind:  yaml.ScalarNode,
		Style: yaml.SingleQuotedStyle,
		Value: string(s),
	}
	return node, nil
}
