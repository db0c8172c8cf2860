// Package rules loads reusable rename rule sets from YAML files.
//
// A rule file lists actions in the same syntax as the -a flag and may pin the
// discovery filter, the result filter, and engine switches:
//
//	actions:
//	  - 'r:(Dexter) s0?(\d+)e(\d+):\1 S\2E\3'
//	  - 'a: (%res)'
//	filter: 'Dexter'
//	result: 'Dexter S[0-9]+E[0-9]+'
//	partial: true
package rules
