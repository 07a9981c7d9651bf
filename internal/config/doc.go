// Package config loads the settings of one generation pass.
//
// Values come, lowest precedence first, from an HCL file, from DSLGEN_*
// environment variables (a .env file is loaded into the environment first)
// and from command line flags applied by the caller. Expressions in the
// HCL file can read the environment through the env object:
//
//	project_root_package = "example.com/fleet"
//	dsl_builder_package  = "dslbuilder-generator/dslcore"
//	output_dir           = "${env.HOME}/fleet"
package config
