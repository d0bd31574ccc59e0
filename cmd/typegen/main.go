/*
A tool to derive type declarations from a set of example JSON values.
Copyright (C) 2025  Marcus Perlick

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU Affero General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU Affero General Public License for more details.

You should have received a copy of the GNU Affero General Public License
along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"git.fractalqb.de/fractalqb/tetrta"
	"git.fractalqb.de/fractalqb/typegen"
	"gopkg.in/yaml.v3"
)

var (
	fRoot      = typegen.DefaultRootTypeName
	fElem      = typegen.DefaultArrayElementTypeName
	fIndent    = typegen.DefaultIndentSize
	fTreeStyle = "draw"
	fOutline   bool
	fBrowse    bool
	fBundle    bool
	fArgs      string
	fOut       string
	fExpect    string
	fCapture   string
)

const (
	envRoot   = "TYPEGEN_ROOT"
	envElem   = "TYPEGEN_ELEM"
	envIndent = "TYPEGEN_INDENT"
	envTree   = "TYPEGEN_TREE"

	snapshotExt = ".tgs"
)

func init() {
	if v, ok := os.LookupEnv(envRoot); ok {
		fRoot = v
	}
	if v, ok := os.LookupEnv(envElem); ok {
		fElem = v
	}
	if v, ok := os.LookupEnv(envIndent); ok {
		if n, err := strconv.Atoi(v); err == nil {
			fIndent = n
		}
	}
	if v, ok := os.LookupEnv(envTree); ok {
		fTreeStyle = v
	}
}

func usage() {
	w := flag.CommandLine.Output()
	fmt.Fprint(w, "Generate type declarations from example JSON or YAML files.\n\n")
	fmt.Fprintln(w, `Usage: typegen [flags] <JSON/YAML file>...
FLAGS:`)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.StringVar(&fRoot, "root", fRoot,
		"Name of the top-level type; Env: "+envRoot+"\n")
	flag.StringVar(&fElem, "elem", fElem,
		"Name of the element type of record lists; Env: "+envElem+"\n")
	flag.IntVar(&fIndent, "indent", fIndent,
		"Number of spaces to indent fields with; Env: "+envIndent+"\n")
	flag.StringVar(&fTreeStyle, "tree", fTreeStyle,
		"Select style for tree printing from: ascii, draw, items; Env: "+envTree+"\n")
	flag.BoolVar(&fOutline, "outline", fOutline,
		"Print the deep schema as outline instead of declarations")
	flag.BoolVar(&fBrowse, "browse", fBrowse,
		"Browse the deep schema interactively")
	flag.BoolVar(&fBundle, "bundle", fBundle,
		"Generate one exported section per input file")
	flag.StringVar(&fArgs, "a", fArgs,
		"Read args from file ('-' reads from stdin)")
	flag.StringVar(&fOut, "o", fOut,
		"Write output to file ('-' writes to stdout)")
	flag.StringVar(&fExpect, "expect", fExpect,
		"Assert the samples against an expectation file (YAML or "+snapshotExt+")")
	flag.StringVar(&fCapture, "capture", fCapture,
		"Write the deep schema of the samples as expectation file (YAML or "+snapshotExt+")")
	flag.Parse()

	gen, err := typegen.New(
		typegen.RootTypeName(fRoot),
		typegen.ArrayElementTypeName(fElem),
		typegen.IndentSize(fIndent),
	)
	if err != nil {
		log.Fatal(err)
	}

	var srcs []typegen.Source
	switch {
	case fArgs == "-":
		srcs = readArgs(os.Stdin)
	case fArgs != "":
		srcs = readArgsFile(fArgs)
	case len(flag.Args()) > 0:
		for _, arg := range flag.Args() {
			src, err := readFile(arg)
			if err != nil {
				log.Fatal(err)
			}
			srcs = append(srcs, src)
		}
	default:
		samples, err := typegen.DecodeJSON(os.Stdin)
		if err != nil {
			log.Fatal(err)
		}
		srcs = append(srcs, source("stdin", samples))
	}
	data := combine(srcs)

	if fExpect != "" {
		exp, err := readExpect(fExpect)
		if err != nil {
			log.Fatal(err)
		}
		if err := gen.AssertDeep(data, exp); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		log.Println("samples match", fExpect)
	}
	if fCapture != "" {
		scm, err := gen.Schema(data)
		if err != nil {
			log.Fatal(err)
		}
		if err := writeExpect(fCapture, scm.Expect()); err != nil {
			log.Fatal(err)
		}
	}
	if fBrowse {
		scm, err := gen.Schema(data)
		if err != nil {
			log.Fatal(err)
		}
		newBrowser(scm, gen.RootTypeName()).run()
		return
	}
	if fExpect != "" && fOut == "" {
		return
	}

	var w io.Writer = os.Stdout
	if fOut != "" && fOut != "-" {
		if tmp, err := os.Create(fOut); err != nil {
			log.Fatal(err)
		} else {
			defer tmp.Close()
			w = tmp
		}
	}
	switch {
	case fBundle:
		err = gen.Bundle(context.Background(), w, srcs)
	case fOutline:
		var scm typegen.Schema
		if scm, err = gen.Schema(data); err == nil {
			err = typegen.NewOutline(w, &typegen.OutlineConfig{
				TreeStyle: treeStyle(),
				Root:      gen.RootTypeName(),
			}).Print(scm)
		}
	default:
		var decls string
		if decls, err = gen.Generate(data); err == nil {
			_, err = fmt.Fprintln(w, decls)
		}
	}
	if err != nil {
		log.Fatal(err)
	}
}

func treeStyle() *tetrta.TreeStyle {
	switch fTreeStyle {
	case "a", "ascii":
		return tetrta.ASCIITree()
	case "d", "draw":
		return tetrta.BoxDrawTree()
	case "i", "items":
		return tetrta.ItemTree()
	}
	return nil
}

// source makes one example value from the samples read from one input.
func source(name string, samples []any) typegen.Source {
	name = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if len(samples) == 1 {
		return typegen.Source{Name: name, Data: samples[0]}
	}
	return typegen.Source{Name: name, Data: samples}
}

func combine(srcs []typegen.Source) any {
	if len(srcs) == 1 {
		return srcs[0].Data
	}
	res := make([]any, 0, len(srcs))
	for _, src := range srcs {
		if l, ok := src.Data.([]any); ok {
			res = append(res, l...)
		} else {
			res = append(res, src.Data)
		}
	}
	return res
}

func readArgsFile(file string) []typegen.Source {
	r, err := os.Open(file)
	if err != nil {
		log.Fatal(err)
	}
	defer r.Close()
	return readArgs(r)
}

func readArgs(r io.Reader) (srcs []typegen.Source) {
	scn := bufio.NewScanner(r)
	for scn.Scan() {
		file := scn.Text()
		if file == "" {
			continue
		}
		src, err := readFile(file)
		if err != nil {
			log.Fatal(err)
		}
		srcs = append(srcs, src)
	}
	if err := scn.Err(); err != nil {
		log.Fatal(err)
	}
	return srcs
}

func readFile(name string) (src typegen.Source, err error) {
	rd, err := os.Open(name)
	if err != nil {
		return src, err
	}
	defer rd.Close()
	log.Println("read file", name)
	var samples []any
	switch filepath.Ext(name) {
	case ".yml", ".yaml":
		samples, err = typegen.DecodeYAML(rd)
	default:
		samples, err = typegen.DecodeJSON(rd)
	}
	if err != nil {
		return src, fmt.Errorf("%s: %w", name, err)
	}
	if len(samples) == 0 {
		return src, fmt.Errorf("%s: no samples", name)
	}
	return source(name, samples), nil
}

func readExpect(name string) (exp typegen.Expect, err error) {
	rd, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer rd.Close()
	if filepath.Ext(name) == snapshotExt {
		var sio typegen.SnapshotIO
		return sio.Read(rd)
	}
	err = yaml.NewDecoder(rd).Decode(&exp)
	if errors.Is(err, io.EOF) {
		err = nil
	}
	return exp, err
}

func writeExpect(name string, exp typegen.Expect) (err error) {
	w, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()
	if filepath.Ext(name) == snapshotExt {
		var sio typegen.SnapshotIO
		if err = sio.Write(w, exp); err == nil {
			log.Printf("wrote %d strings, %d duplicates", sio.StrCount, sio.StrDup)
		}
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err = enc.Encode(exp); err != nil {
		return err
	}
	return enc.Close()
}
