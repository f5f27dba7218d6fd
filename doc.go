// dnstests is a fixture-driven harness for the dns query tool.
//
// For every fixture it reads <name>.in and <name>.out from the fixture
// directory, runs the tool with the whitespace-separated tokens of the .in
// file as arguments, masks the volatile "TTL: <digits>," field in the
// captured stdout and checks that the .out text appears literally in it.
//
// All fixtures are loaded before the first case runs: a missing file aborts
// the run without printing any result. A failing case does not stop the
// remaining ones.
//
// Example:
//
//	dnstests -exec ./dns -dir tests/
//
// Output:
//
//	Test Passed: ./dns '-s kazi.fit.vutbr.cz www.fit.vut.cz'
//	Test Failed: Input '-r -s 1.1.1.1 example.com'
//
//	Test output:
//	Authoritative: No, Recursive: Yes, Truncated: No
//	...
//
//	Expected output:
//	Authoritative: No, Recursive: Yes, Truncated: No
//	...
//
//	10/11 tests passed
//
// Fixtures can also be declared in a YAML manifest:
//
//	exec: ./dns
//	dir: tests/
//	timeout: 10s
//	cases:
//	  - name: x1
//	  - name: reverse
//	    input: rev.in
//	    output: rev.out
//	normalize:
//	  - pattern: 'id: \d+'
//	    replace: 'id: <id>'
package main
