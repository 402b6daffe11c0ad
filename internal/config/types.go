package config

// ToolConfig represents the toolbase configuration file structure
type ToolConfig struct {
	// Kubeconfig is the kubeconfig file holding the ambient credential
	Kubeconfig string `mapstructure:"kubeconfig" yaml:"kubeconfig,omitempty" json:"kubeconfig,omitempty"`

	// Context overrides the kubeconfig's current context
	Context string `mapstructure:"context" yaml:"context,omitempty" json:"context,omitempty"`

	// Scope names the component in error reports
	Scope string `mapstructure:"scope" yaml:"scope,omitempty" json:"scope,omitempty"`

	// Output contains record listing settings
	Output OutputConfig `mapstructure:"output" yaml:"output,omitempty" json:"output,omitempty"`

	// Log contains logging settings
	Log LogConfig `mapstructure:"log" yaml:"log,omitempty" json:"log,omitempty"`

	// Identity contains credential resolution settings
	Identity IdentityConfig `mapstructure:"identity" yaml:"identity,omitempty" json:"identity,omitempty"`
}

// OutputConfig contains record listing settings
type OutputConfig struct {
	// Format is the listing format (columns, table, json, yaml)
	Format string `mapstructure:"format" yaml:"format,omitempty" json:"format,omitempty"`

	// NoColor disables colored output
	NoColor bool `mapstructure:"noColor" yaml:"noColor,omitempty" json:"noColor,omitempty"`

	// NoHeaders omits the header line
	NoHeaders bool `mapstructure:"noHeaders" yaml:"noHeaders,omitempty" json:"noHeaders,omitempty"`

	// Gutter is the padding added to every column width
	Gutter int `mapstructure:"gutter" yaml:"gutter,omitempty" json:"gutter,omitempty"`
}

// LogConfig contains logging settings
type LogConfig struct {
	// Format is the log handler (console, text, json)
	Format string `mapstructure:"format" yaml:"format,omitempty" json:"format,omitempty"`

	// Verbose enables debug logging
	Verbose bool `mapstructure:"verbose" yaml:"verbose,omitempty" json:"verbose,omitempty"`
}

// IdentityConfig contains credential resolution settings
type IdentityConfig struct {
	// Strict rejects certificates outside their validity window
	Strict bool `mapstructure:"strict" yaml:"strict,omitempty" json:"strict,omitempty"`
}

// UserInfo describes the user entry selected by a kubeconfig context
type UserInfo struct {
	// Name is the kubeconfig user entry name
	Name string `json:"name"`

	// Context is the context that selected the user
	Context string `json:"context"`

	// Cluster is the cluster of that context
	Cluster string `json:"cluster"`

	// Namespace is the default namespace of that context
	Namespace string `json:"namespace"`
}
