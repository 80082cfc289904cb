// Command shaderlint validates synesthetic shader specification documents.
//
// Usage:
//
//	shaderlint [options] <input>
//
// Examples:
//
//	shaderlint lib.json                          # Validate a ShaderLib document
//	shaderlint -kind shader block.json           # Validate a v0.4 shader block
//	shaderlint -kind compute block.yaml          # Validate a compute block (YAML input)
//	shaderlint -helper sdHexagon -effective lib.json
//	shaderlint -helper sdHexagon -template lib.json
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/shaderlib"
	"github.com/gogpu/shaderlib/library"
)

var (
	kind      = flag.String("kind", "lib", "document kind: lib, shader, or compute")
	helper    = flag.String("helper", "", "helper name for -effective and -template")
	effective = flag.Bool("effective", false, "print the helper's effective input specification")
	template  = flag.Bool("template", false, "check that the template demonstrates the helper")
	version   = flag.Bool("version", false, "print version")
)

const shaderlintVersion = "0.1.0-dev"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *version {
		fmt.Printf("shaderlint version %s (ShaderLib v%s, DSL v%s)\n",
			shaderlintVersion, shaderlib.LibraryVersion, shaderlib.DSLVersion)
		return
	}

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Error: no input file specified")
		usage()
		os.Exit(1)
	}
	inputPath := args[0]

	data, err := os.ReadFile(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}
	if isYAML(inputPath) {
		if data, err = yamlToJSON(data); err != nil {
			fmt.Fprintf(os.Stderr, "Error decoding YAML: %v\n", err)
			os.Exit(1)
		}
	}

	switch *kind {
	case "lib":
		lintLibrary(inputPath, data)
	case "shader", "compute":
		lintBlock(inputPath, data, *kind)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown kind %q\n", *kind)
		os.Exit(1)
	}
}

func lintLibrary(inputPath string, data []byte) {
	lib, err := shaderlib.ParseLibrary(data)
	if err != nil {
		var errs library.ErrorList
		if errors.As(err, &errs) {
			for _, e := range errs {
				fmt.Fprintf(os.Stderr, "error: %s [%s]\n", e, e.Code)
			}
			fmt.Fprintf(os.Stderr, "%s: %d error(s)\n", inputPath, errs.Len())
		} else {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}

	if *helper == "" {
		fmt.Printf("%s: valid ShaderLib (%d helpers)\n", inputPath, len(lib.Helpers))
		return
	}

	if *effective {
		eff, err := shaderlib.EffectiveInputs(lib, *helper)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("uniforms for %s:\n", *helper)
		for _, u := range eff.Uniforms {
			fmt.Printf("  %s\n", u)
		}
		fmt.Println("input parameters:")
		for _, p := range eff.Params {
			fmt.Printf("  %s (%s) -> %s\n", p.Name, p.Type, p.Parameter)
		}
	}

	if *template {
		report := shaderlib.CheckTemplate(lib, *helper)
		fmt.Printf("template demonstrates %s: %v\n", *helper, report.Valid)
		for _, w := range report.Warnings {
			fmt.Printf("  warning: %s\n", w)
		}
	}
}

func lintBlock(inputPath string, data []byte, kind string) {
	var block map[string]any
	if err := json.Unmarshal(data, &block); err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding document: %v\n", err)
		os.Exit(1)
	}

	var err error
	if kind == "compute" {
		err = shaderlib.ValidateComputeShaderBlock(block)
	} else {
		err = shaderlib.ValidateShaderBlock(block)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s: valid %s block\n", inputPath, kind)
}

func isYAML(path string) bool {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// yamlToJSON re-encodes a YAML document as JSON so both formats flow through
// the same validation path.
func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

func usage() {
	fmt.Fprintf(os.Stderr, `shaderlint - synesthetic shader specification linter

Usage:
  shaderlint [options] <input>

Options:
`)
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Examples:
  shaderlint lib.json
  shaderlint -kind shader block.json
  shaderlint -helper sdHexagon -effective lib.json
`)
}
