package output

import (
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLFormatter formats output as YAML
type YAMLFormatter struct {
	options *Options
}

// NewYAMLFormatter creates a new YAML formatter
func NewYAMLFormatter(opts *Options) *YAMLFormatter {
	if opts == nil {
		opts = &Options{}
	}
	return &YAMLFormatter{
		options: opts,
	}
}

// Format writes rows as a YAML sequence. Keys follow the order of fields.
func (f *YAMLFormatter) Format(w io.Writer, rows []Record, fields []string) error {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, row := range rows {
		item := &yaml.Node{Kind: yaml.MappingNode}
		for _, field := range fields {
			var value yaml.Node
			if err := value.Encode(row[field]); err != nil {
				return err
			}
			item.Content = append(item.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: field},
				&value,
			)
		}
		seq.Content = append(seq.Content, item)
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	return encoder.Encode(seq)
}
