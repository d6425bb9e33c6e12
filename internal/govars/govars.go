// Package govars parses the textual output of GDB's CLI "info variables"
// command into a flat, ordered list of global symbols. It is an optional
// helper used by example tooling — the core MI wrapper never calls it.
package govars

import (
	"bufio"
	"strings"
)

// Variable is one global symbol declaration found under a "File ...:"
// heading in "info variables" output.
type Variable struct {
	File string
	Type string
	Name string
}

var filePrefix = "File "

// Parse scans "info variables" output of the form:
//
//	All defined variables:
//
//	File /path/to/a.c:
//	int counter;
//	static char *name;
//
//	File /path/to/b.c:
//	...
//
// and returns every declaration across every file, in the order GDB
// printed them. Anything after the last recognized "File ...:" heading
// that isn't itself a declaration line is ignored, matching the trailing
// tail the CLI sometimes appends (e.g. "Non-debugging symbols:").
func Parse(text string) []Variable {
	var (
		result      []Variable
		currentFile string
		inFile      bool
	)
	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			inFile = false
			continue
		}
		if strings.HasPrefix(line, filePrefix) && strings.HasSuffix(line, ":") {
			currentFile = strings.TrimSuffix(strings.TrimPrefix(line, filePrefix), ":")
			inFile = true
			continue
		}
		if !inFile || currentFile == "" {
			continue
		}
		typ, name, ok := splitDeclaration(line)
		if !ok {
			continue
		}
		result = append(result, Variable{File: currentFile, Type: typ, Name: name})
	}
	return result
}

// splitDeclaration splits a trailing-semicolon C declaration of the form
// "<type> <name>;" into its type and name parts. The name is taken as the
// last identifier-shaped token before the semicolon, so a pointer
// declarator ("char *name;") stays attached to the type. A line that does
// not end in an identifier, such as an array declaration
// ("char name[10];"), is not recognized and yields ok == false.
func splitDeclaration(line string) (typ, name string, ok bool) {
	line = strings.TrimSuffix(strings.TrimSpace(line), ";")
	if line == "" {
		return "", "", false
	}
	idx := strings.LastIndexFunc(line, func(r rune) bool {
		return !isIdentRune(r)
	})
	if idx < 0 || idx == len(line)-1 {
		return "", "", false
	}
	name = line[idx+1:]
	typ = strings.TrimSpace(line[:idx+1])
	if name == "" || typ == "" {
		return "", "", false
	}
	return typ, name, true
}

func isIdentRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
