// Package playbook defines the declarative workflow format of
// mxrunner and turns playbooks into external tool invocations.
//
// A playbook is a YAML document naming a network, a scenario, an
// environment variable map, and an ordered list of steps. Each step
// maps to one subcommand invocation of the external mxops tool. Two
// playbooks ("queries" and "deploy") are compiled in: they reproduce
// the original tutorial scripts byte for byte at the argument vector
// level.
package playbook
