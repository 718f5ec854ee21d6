// Package harness provides conformance testing for configuration
// resolution.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	config: |
//	  <phpunit colors="true">
//	    <testsuite name="unit"><directory>tests</directory></testsuite>
//	  </phpunit>
//	files:
//	  - tests/FooTest.php
//	mode: skip-missing
//	expect:
//	  suites:
//	    - name: unit
//	      files: [tests/FooTest.php]
//	  options: { colors: true }
//	golden: true
//
// # Isolation
//
// Each scenario runs in a fresh scratch directory: the listed files are
// created there, the config is written as phpunit.xml and suite
// directories resolve against it (or against base_dir below it). Paths in
// results and golden snapshots are relative to the scratch directory.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/suites.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, e := range result.Errors {
//	        log.Println(e)
//	    }
//	}
package harness
