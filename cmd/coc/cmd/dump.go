package cmd

import (
	"fmt"
	"os"

	"github.com/kr/pretty"

	"github.com/psenchanka/colang/internal/semantic"
	"github.com/psenchanka/colang/internal/symbols"
)

// symbolDump is the acyclic summary --dump-symbols renders: the symbol
// graph itself links types to their reference types and back, which a
// naive reflective printer would chase forever.
type symbolDump struct {
	Types     []typeDump
	Functions []string
	Globals   []string
}

type typeDump struct {
	Name         string
	Fields       []string
	Methods      []string
	Constructors []string
}

func printSymbolDump(prog *semantic.Program) {
	dump := symbolDump{}
	for _, sym := range prog.Root.Symbols() {
		switch s := sym.(type) {
		case *symbols.Type:
			if s.IsPrimitive() {
				continue
			}
			dump.Types = append(dump.Types, dumpType(s))
		case *symbols.Function:
			if !s.IsNative() {
				dump.Functions = append(dump.Functions, signatureString(s, s.ReturnType()))
			}
		case *symbols.OverloadedFunction:
			for _, f := range s.Candidates() {
				if !f.IsNative() {
					dump.Functions = append(dump.Functions, signatureString(f, f.ReturnType()))
				}
			}
		case *symbols.Variable:
			dump.Globals = append(dump.Globals, s.Type().Name()+" "+s.Name())
		}
	}
	fmt.Fprintf(os.Stderr, "%# v\n", pretty.Formatter(dump))
}

func dumpType(t *symbols.Type) typeDump {
	td := typeDump{Name: t.Name()}
	for _, f := range t.Fields() {
		td.Fields = append(td.Fields, f.Type().Name()+" "+f.Name())
	}
	for _, name := range methodNames(t) {
		for _, sig := range t.MethodSignatures(name) {
			m := sig.(*symbols.Method)
			if m.IsNative() {
				continue
			}
			td.Methods = append(td.Methods, signatureString(m, m.ReturnType()))
		}
	}
	for _, c := range t.Constructors() {
		if c.IsNative() {
			continue
		}
		td.Constructors = append(td.Constructors, signatureString(c, nil))
	}
	return td
}

func methodNames(t *symbols.Type) []string {
	seen := map[string]bool{}
	var names []string
	for _, sig := range t.AllMethods() {
		if !seen[sig.Name()] {
			seen[sig.Name()] = true
			names = append(names, sig.Name())
		}
	}
	return names
}

func signatureString(sig symbols.Signature, ret symbols.TypeSymbol) string {
	s := ""
	if ret != nil {
		s = ret.Name() + " "
	}
	s += sig.Name() + "("
	for i, p := range sig.Params() {
		if i > 0 {
			s += ", "
		}
		s += p.Type.Name()
	}
	return s + ")"
}
