package entity

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ResultDump maps a validation name to the records collected for it.
// Key order follows the order in which validations were first recorded
// and survives a YAML round trip.
type ResultDump struct {
	order   []string
	records map[string][]ValidationRecord
}

// NewResultDump returns an empty dump.
func NewResultDump() *ResultDump {
	return &ResultDump{records: make(map[string][]ValidationRecord)}
}

// Append adds a record under validation, creating the key if needed.
func (d *ResultDump) Append(validation string, record ValidationRecord) {
	if d.records == nil {
		d.records = make(map[string][]ValidationRecord)
	}
	if _, ok := d.records[validation]; !ok {
		d.order = append(d.order, validation)
	}
	d.records[validation] = append(d.records[validation], record)
}

// Validations returns validation names in document order.
func (d *ResultDump) Validations() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Records returns the records stored under validation.
func (d *ResultDump) Records(validation string) []ValidationRecord {
	return d.records[validation]
}

// Namespaces returns every namespace mentioned in the dump, deduplicated,
// in order of first appearance.
func (d *ResultDump) Namespaces() []string {
	seen := make(map[string]bool)
	var namespaces []string
	for _, validation := range d.order {
		for _, record := range d.records[validation] {
			if seen[record.Namespace] {
				continue
			}
			seen[record.Namespace] = true
			namespaces = append(namespaces, record.Namespace)
		}
	}
	return namespaces
}

// Lookup returns the first record of validation for namespace.
func (d *ResultDump) Lookup(validation, namespace string) (ValidationRecord, bool) {
	for _, record := range d.records[validation] {
		if record.Namespace == namespace {
			return record, true
		}
	}
	return ValidationRecord{}, false
}

// UnmarshalYAML reads a mapping of validation name to record list.
// Keys whose value is not a sequence are skipped.
func (d *ResultDump) UnmarshalYAML(value *yaml.Node) error {
	*d = ResultDump{records: make(map[string][]ValidationRecord)}
	if value.Kind == yaml.DocumentNode && len(value.Content) > 0 {
		value = value.Content[0]
	}
	if value.Kind == 0 || value.Tag == "!!null" {
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("result dump must be a mapping, got line %d", value.Line)
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		if val.Kind != yaml.SequenceNode {
			continue
		}
		var records []ValidationRecord
		if err := val.Decode(&records); err != nil {
			return fmt.Errorf("decoding records of %q: %w", key.Value, err)
		}
		if _, ok := d.records[key.Value]; !ok {
			d.order = append(d.order, key.Value)
		}
		d.records[key.Value] = append(d.records[key.Value], records...)
	}
	return nil
}

// MarshalYAML writes the dump as an ordered mapping.
func (d ResultDump) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, validation := range d.order {
		var val yaml.Node
		if err := val.Encode(d.records[validation]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: validation},
			&val,
		)
	}
	return node, nil
}
