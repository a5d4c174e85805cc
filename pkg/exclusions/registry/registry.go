package registry

import (
	"encoding/json"
	"fmt"

	yaml "gopkg.in/yaml.v2"

	"github.com/lunarbay/proviso/pkg/exclusions"
)

// Requirement is a named, declarative exclusion rule: backend specs that
// skip a test, specs under which it is expected to fail, and tags. Suites
// declare requirements once and reference them from many tests.
type Requirement struct {
	Name   string   `json:"name" yaml:"name"`
	Reason string   `json:"reason" yaml:"reason"`
	Skip   []string `json:"skip" yaml:"skip"`
	Fail   []string `json:"fail" yaml:"fail"`
	Tags   []string `json:"tags" yaml:"tags"`
}

// Rule resolves the requirement's spec strings into a rule. Malformed specs
// fail here, at load time, never during a run.
func (r *Requirement) Rule() (*exclusions.Rule, error) {
	rule := exclusions.Tags(r.Tags...)
	for _, spec := range r.Skip {
		p, err := exclusions.Text(spec).Resolve(r.Reason)
		if err != nil {
			return nil, fmt.Errorf("requirement %q: %w", r.Name, err)
		}
		rule = rule.Add(exclusions.SkipIf(exclusions.Pred(p), r.Reason))
	}
	for _, spec := range r.Fail {
		p, err := exclusions.Text(spec).Resolve(r.Reason)
		if err != nil {
			return nil, fmt.Errorf("requirement %q: %w", r.Name, err)
		}
		rule = rule.Add(exclusions.FailsIf(exclusions.Pred(p), r.Reason))
	}
	return rule, nil
}

// Repo stores named requirements.
type Repo interface {
	Name() string
	Get(name string) (*Requirement, error)
	Save(req *Requirement) error
	Remove(name string) error
	Each(fn func(req *Requirement)) error
	Count() int
	Close()
}

func isJson(data []byte) bool {
	var js json.RawMessage
	return json.Unmarshal(data, &js) == nil
}

func decode(data []byte) (*Requirement, error) {
	r := &Requirement{}
	if isJson(data) {
		err := json.Unmarshal(data, r)
		if err != nil {
			return nil, err
		}
		return r, nil
	}
	err := yaml.Unmarshal(data, r)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func encode(r *Requirement) ([]byte, error) {
	return yaml.Marshal(r)
}
