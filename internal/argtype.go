package internal

// ArgType is the type that specifies the command line arguments.
type ArgType struct {
	// Project is the GCP project string
	Project string

	// Instance is the instance string
	Instance string

	// Database is the database string
	Database string

	// DDLFilepath is the filepath of the ddl file.
	DDLFilepath string

	// OverrideFiles are the override documents applied in order.
	OverrideFiles []string

	// InflectionRuleFile is custom inflection rule file.
	InflectionRuleFile string

	// Columns toggles printing the per column decisions.
	Columns bool

	// Verbose enables debug logging of every override hit.
	Verbose bool
}
