// This file owns the canonical wire encoding of the node model. Field
// order in the shadow structs is the field order on the wire, and map
// values pass through encoding/json's sorted-key encoding, so the same
// tree always serializes to byte-identical output.
package flowdef

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownNodeType is returned when a document carries a "type"
// discriminator outside the closed node set.
var ErrUnknownNodeType = errors.New("unknown node type")

const (
	typeStep      = "Step"
	typeParallel  = "Parallel"
	typeCondition = "Condition"
	typeLoop      = "Loop"
	typeSequence  = "Sequence"
)

type stepJSON struct {
	Type   string         `json:"type"`
	Name   string         `json:"name"`
	Output string         `json:"output"`
	Inputs []string       `json:"inputs"`
	Config map[string]any `json:"config"`
}

func (s *Step) MarshalJSON() ([]byte, error) {
	out := stepJSON{
		Type:   typeStep,
		Name:   s.Name,
		Output: s.Output,
		Inputs: s.Inputs,
		Config: s.Config,
	}
	if out.Inputs == nil {
		out.Inputs = []string{}
	}
	if out.Config == nil {
		out.Config = map[string]any{}
	}
	return json.Marshal(out)
}

func (s *Step) UnmarshalJSON(data []byte) error {
	var raw stepJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.Name = raw.Name
	s.Output = raw.Output
	s.Inputs = raw.Inputs
	s.Config = raw.Config
	if s.Inputs == nil {
		s.Inputs = []string{}
	}
	if s.Config == nil {
		s.Config = map[string]any{}
	}
	return nil
}

type parallelJSON struct {
	Type    string            `json:"type"`
	Outputs []string          `json:"outputs"`
	Steps   []json.RawMessage `json:"steps"`
}

func (p *Parallel) MarshalJSON() ([]byte, error) {
	out := parallelJSON{Type: typeParallel, Outputs: p.Outputs}
	if out.Outputs == nil {
		out.Outputs = []string{}
	}
	out.Steps = make([]json.RawMessage, 0, len(p.Steps))
	for _, n := range p.Steps {
		raw, err := json.Marshal(n)
		if err != nil {
			return nil, err
		}
		out.Steps = append(out.Steps, raw)
	}
	return json.Marshal(out)
}

func (p *Parallel) UnmarshalJSON(data []byte) error {
	var raw parallelJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.Outputs = raw.Outputs
	if p.Outputs == nil {
		p.Outputs = []string{}
	}
	p.Steps = make([]Node, 0, len(raw.Steps))
	for _, rn := range raw.Steps {
		n, err := DecodeNode(rn)
		if err != nil {
			return err
		}
		p.Steps = append(p.Steps, n)
	}
	return nil
}

type conditionJSON struct {
	Type            string `json:"type"`
	PredicateID     string `json:"predicate_id"`
	PredicateSource string `json:"predicate_source"`
	Then            Node   `json:"then_branch"`
	Else            Node   `json:"else_branch,omitempty"`
}

func (c *Condition) MarshalJSON() ([]byte, error) {
	return json.Marshal(conditionJSON{
		Type:            typeCondition,
		PredicateID:     c.PredicateID,
		PredicateSource: c.PredicateSource,
		Then:            c.Then,
		Else:            c.Else,
	})
}

func (c *Condition) UnmarshalJSON(data []byte) error {
	var raw struct {
		PredicateID     string          `json:"predicate_id"`
		PredicateSource string          `json:"predicate_source"`
		Then            json.RawMessage `json:"then_branch"`
		Else            json.RawMessage `json:"else_branch"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.PredicateID = raw.PredicateID
	c.PredicateSource = raw.PredicateSource

	then, err := DecodeNode(raw.Then)
	if err != nil {
		return err
	}
	c.Then = then

	c.Else = nil
	if len(raw.Else) > 0 {
		els, err := DecodeNode(raw.Else)
		if err != nil {
			return err
		}
		c.Else = els
	}
	return nil
}

type loopJSON struct {
	Type     string `json:"type"`
	IterVar  string `json:"iter_var"`
	Iterable string `json:"iterable"`
	Body     Node   `json:"body"`
}

func (l *Loop) MarshalJSON() ([]byte, error) {
	return json.Marshal(loopJSON{
		Type:     typeLoop,
		IterVar:  l.IterVar,
		Iterable: l.Iterable,
		Body:     l.Body,
	})
}

func (l *Loop) UnmarshalJSON(data []byte) error {
	var raw struct {
		IterVar  string          `json:"iter_var"`
		Iterable string          `json:"iterable"`
		Body     json.RawMessage `json:"body"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	l.IterVar = raw.IterVar
	l.Iterable = raw.Iterable

	body, err := DecodeNode(raw.Body)
	if err != nil {
		return err
	}
	l.Body = body
	return nil
}

type sequenceJSON struct {
	Type  string            `json:"type"`
	Steps []json.RawMessage `json:"steps"`
}

func (s *Sequence) MarshalJSON() ([]byte, error) {
	out := sequenceJSON{Type: typeSequence}
	out.Steps = make([]json.RawMessage, 0, len(s.Steps))
	for _, n := range s.Steps {
		raw, err := json.Marshal(n)
		if err != nil {
			return nil, err
		}
		out.Steps = append(out.Steps, raw)
	}
	return json.Marshal(out)
}

func (s *Sequence) UnmarshalJSON(data []byte) error {
	var raw sequenceJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.Steps = make([]Node, 0, len(raw.Steps))
	for _, rn := range raw.Steps {
		n, err := DecodeNode(rn)
		if err != nil {
			return err
		}
		s.Steps = append(s.Steps, n)
	}
	return nil
}

// DecodeNode decodes one node from its wire form, dispatching on the "type"
// discriminator. An unrecognized discriminator fails with
// ErrUnknownNodeType.
func DecodeNode(data []byte) (Node, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decoding node header: %w", err)
	}

	var n Node
	switch head.Type {
	case typeStep:
		n = &Step{}
	case typeParallel:
		n = &Parallel{}
	case typeCondition:
		n = &Condition{}
	case typeLoop:
		n = &Loop{}
	case typeSequence:
		n = &Sequence{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownNodeType, head.Type)
	}

	if err := json.Unmarshal(data, n); err != nil {
		return nil, err
	}
	return n, nil
}

type workflowJSON struct {
	Name       string      `json:"name"`
	Parameters []Parameter `json:"parameters"`
	Body       Node        `json:"body"`
	ReturnVar  *string     `json:"return_var"`
}

func (w *Workflow) MarshalJSON() ([]byte, error) {
	out := workflowJSON{
		Name:       w.Name,
		Parameters: w.Parameters,
		Body:       w.Body,
	}
	if out.Parameters == nil {
		out.Parameters = []Parameter{}
	}
	if w.ReturnVar != "" {
		rv := w.ReturnVar
		out.ReturnVar = &rv
	}
	return json.Marshal(out)
}

func (w *Workflow) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name       string          `json:"name"`
		Parameters []Parameter     `json:"parameters"`
		Body       json.RawMessage `json:"body"`
		ReturnVar  *string         `json:"return_var"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	w.Name = raw.Name
	w.Parameters = raw.Parameters
	if w.Parameters == nil {
		w.Parameters = []Parameter{}
	}

	body, err := DecodeNode(raw.Body)
	if err != nil {
		return err
	}
	w.Body = body

	w.ReturnVar = ""
	if raw.ReturnVar != nil {
		w.ReturnVar = *raw.ReturnVar
	}
	return nil
}

// DecodeWorkflow decodes a complete workflow document.
func DecodeWorkflow(data []byte) (*Workflow, error) {
	var w Workflow
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decoding workflow document: %w", err)
	}
	return &w, nil
}
